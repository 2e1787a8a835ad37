package main

import (
	"context"
	"fmt"

	"github.com/abhishekmj303/ytm2spt/internal/shared"
	"github.com/abhishekmj303/ytm2spt/internal/tasks"
	"github.com/abhishekmj303/ytm2spt/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist transfer.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.TransferOptions{
		CreateNew: cmd.Bool("create-new"),
		DryRun:    cmd.Bool("dryrun"),
		Limit:     int(cmd.Int("limit")),
	}
	if opts.CreateNew && opts.DryRun {
		return fmt.Errorf("%w: cannot specify both --create-new and --dryrun", shared.ErrInvalidArgument)
	}
	if opts.Limit < 0 {
		return fmt.Errorf("%w: --limit must be zero or greater", shared.ErrInvalidArgument)
	}

	if err := r.applyConfig(cmd.String("config")); err != nil {
		return err
	}
	if r.source == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}
	if r.engine == nil {
		return fmt.Errorf("%w: transfer engine not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.authenticateYouTube(ctx, cmd.String("youtube-oauth-json")); err != nil {
		return err
	}
	if err := r.ensureSpotifyAuth(ctx, cmd); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/ytm2spt-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.source, r.engine, opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return model.Err()
}
