package main

import (
	"context"
	"fmt"

	"github.com/abhishekmj303/ytm2spt/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStats reports the number of cached search results.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	if err := r.applyConfig(cmd.String("config")); err != nil {
		return err
	}
	if r.cache == nil {
		return fmt.Errorf("%w: cache not configured, run 'ytm2spt setup database' first", shared.ErrServiceUnavailable)
	}

	count, err := r.cache.Count()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	r.writePlain("Cached search results: %d\n", count)
	return nil
}

// CachePurge deletes all cached search results.
func (r *Runner) CachePurge(ctx context.Context, cmd *cli.Command) error {
	if err := r.applyConfig(cmd.String("config")); err != nil {
		return err
	}
	if r.cache == nil {
		return fmt.Errorf("%w: cache not configured, run 'ytm2spt setup database' first", shared.ErrServiceUnavailable)
	}

	purged, err := r.cache.Purge()
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	r.logger.Info("cache purged", "entries", purged)
	r.writePlain("✓ Purged %d cached search results\n", purged)
	return nil
}
