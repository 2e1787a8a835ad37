package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishekmj303/ytm2spt/internal/shared"
	"github.com/abhishekmj303/ytm2spt/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TransferRun runs a full YouTube Music → Spotify playlist transfer.
func (r *Runner) TransferRun(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.TransferOptions{
		SourceRaw: cmd.String("youtube-url-or-id"),
		DestRaw:   cmd.String("spotify-url-or-id"),
		DestName:  cmd.String("spotify-playlist-name"),
		CreateNew: cmd.Bool("create-new"),
		DryRun:    cmd.Bool("dryrun"),
		Limit:     int(cmd.Int("limit")),
	}

	if opts.DestRaw != "" && opts.DestName != "" {
		return fmt.Errorf("%w: cannot specify both --spotify-url-or-id and --spotify-playlist-name", shared.ErrInvalidArgument)
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

	if err := r.authenticateYouTube(ctx, cmd.String("youtube-oauth-json")); err != nil {
		return err
	}
	// Dry-run still searches the Spotify catalog, so auth is always needed.
	if err := r.ensureSpotifyAuth(ctx, cmd); err != nil {
		return err
	}

	r.logger.Info("starting transfer", "source", opts.SourceRaw, "dry_run", opts.DryRun)
	r.writePlain("Starting playlist transfer...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ResolveDest, tasks.PrepareDest:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.ProcessTracks:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	outcome, err := r.engine.Run(ctx, opts, progressCh)

	if err != nil && outcome == nil {
		if reauthed, authErr := r.handleSpotifyAuthError(ctx, err); reauthed {
			if authErr != nil {
				close(progressCh)
				return authErr
			}
			outcome, err = r.engine.Run(ctx, opts, progressCh)
		}
	}
	close(progressCh)

	if err != nil {
		if outcome == nil {
			return err
		}
		// Partial run: report what completed before the failure.
		r.writePlainln("⚠ Transfer stopped: %v", err)
	}

	header := "Transfer Complete!"
	if outcome.DryRun {
		header = "Dry Run Complete!"
	}
	r.writePlain("\n")
	r.writePlainHeader(header)
	r.writePlain("Source: %s (%d tracks)\n", outcome.SourceTitle, outcome.Total)
	if !outcome.DryRun {
		r.writePlain("Destination: %s\n", outcome.DestinationName)
	}
	r.writePlain("%s\n", outcome.Summary())

	if outcome.NotFound() > 0 {
		r.writePlain("\nSongs not found (%d):\n", outcome.NotFound())
		for _, track := range outcome.Unmatched {
			r.writePlain("  %s\n", track.String())
		}
	}

	return err
}

// authenticateYouTube points the source service at the auth file from the
// flag or config. Skipped when neither is set; public playlists work
// without it.
func (r *Runner) authenticateYouTube(ctx context.Context, authFile string) error {
	if authFile == "" {
		authFile = r.config.Credentials.YouTube.AuthFile
	}
	if authFile == "" || r.source == nil {
		return nil
	}

	data, err := shared.VerifyAndReadFile(authFile)
	if err != nil {
		return fmt.Errorf("failed to read auth file: %w", err)
	}
	if err := shared.ValidateJSON(data); err != nil {
		return fmt.Errorf("auth file %s: %w", authFile, err)
	}

	if err := r.source.Authenticate(ctx, map[string]string{"auth_file": authFile}); err != nil {
		return fmt.Errorf("failed to configure YouTube Music auth: %w", err)
	}
	return nil
}

// ensureSpotifyAuth installs the persisted token, triggering the browser
// flow when no usable token exists.
func (r *Runner) ensureSpotifyAuth(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrServiceUnavailable)
	}

	err := r.spotify.Authenticate(ctx, r.config.Credentials.Spotify.Map())
	if err == nil {
		return nil
	}

	if !errors.Is(err, shared.ErrNotAuthenticated) {
		return err
	}

	r.writePlainln("⚠ No Spotify tokens found. Starting authorization...")
	token, authErr := r.doOAuth(ctx, "authorization")
	if authErr != nil {
		return authErr
	}
	if saveErr := r.saveTokens(token); saveErr != nil {
		r.logger.Warn("failed to persist tokens", "error", saveErr)
	}

	return r.spotify.AuthenticateToken(ctx, token)
}
