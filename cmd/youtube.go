package main

import (
	"context"
	"fmt"

	"github.com/abhishekmj303/ytm2spt/internal/shared"
	"github.com/abhishekmj303/ytm2spt/internal/tasks"
	"github.com/urfave/cli/v3"
)

// YouTubePlaylists lists YouTube Music library playlists.
func (r *Runner) YouTubePlaylists(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.applyConfig(cmd.String("config")); err != nil {
		return err
	}
	if r.source == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.authenticateYouTube(ctx, cmd.String("youtube-oauth-json")); err != nil {
		return err
	}

	r.logger.Info("listing youtube music library playlists")

	playlists, err := r.source.Playlists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceService, err)
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.TrackCount)
		r.writePlain("\n")
	}

	return nil
}

// YouTubeExport exports playlists to files in the chosen format.
func (r *Runner) YouTubeExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.applyConfig(cmd.String("config")); err != nil {
		return err
	}
	if r.source == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.authenticateYouTube(ctx, cmd.String("youtube-oauth-json")); err != nil {
		return err
	}

	ids := cmd.Args().Slice()
	if cmd.Bool("all") {
		playlists, err := r.source.Playlists(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrSourceService, err)
		}
		ids = ids[:0]
		for _, p := range playlists {
			ids = append(ids, p.ID)
		}
	}

	if len(ids) == 0 {
		return fmt.Errorf("%w: provide playlist IDs or use --all", shared.ErrMissingArgument)
	}

	opts := tasks.ExportOptions{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}

	r.logger.Info("exporting playlists", "count", len(ids), "format", opts.Format)
	r.writePlain("Exporting %d playlists...\n\n", len(ids))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("📥 %s\n", update.Message)
		}
	}()

	result, err := r.engine.ExportPlaylists(ctx, progressCh, ids, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Output directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d playlists\n", result.Succeeded, result.TotalPlaylists)

	if result.Failed > 0 {
		r.writePlain("\nFailed exports:\n")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.PlaylistID, res.Error)
			}
		}
	}

	return nil
}
