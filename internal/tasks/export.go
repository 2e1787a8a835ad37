package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/abhishekmj303/ytm2spt/internal/formatter"
	"github.com/abhishekmj303/ytm2spt/internal/models"
	"github.com/abhishekmj303/ytm2spt/internal/shared"
)

// ExportOptions contains configuration for bulk playlist exports.
type ExportOptions struct {
	Format     string  // Export format: csv, markdown, txt
	OutputDir  string  // Base output directory (default: youtube_export_{epoch})
	NumWorkers int     // Concurrent render workers (default: 5, cap 10)
	RateLimit  float64 // Source fetches per second (default: 5)
}

// PlaylistExportResult records the outcome for a single playlist.
type PlaylistExportResult struct {
	PlaylistID   string
	PlaylistName string
	File         string
	Success      bool
	Error        error
}

// ExportResult aggregates a bulk export run.
type ExportResult struct {
	TotalPlaylists  int
	Succeeded       int
	Failed          int
	OutputDirectory string
	Results         []PlaylistExportResult
}

type exportJob struct {
	playlistID string
	playlist   models.Playlist
	tracks     []models.Track
}

// ExportPlaylists exports the given source playlists to files, fetching
// rate-limited and rendering on a small worker pool. Partial failures are
// recorded per playlist, never fatal to the batch.
func (e *TransferEngine) ExportPlaylists(ctx context.Context, progress chan<- ProgressUpdate, ids []string, opts ExportOptions) (*ExportResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("youtube_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		TotalPlaylists:  len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(ids))
	results := make(chan PlaylistExportResult, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(&wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, playlistID := range ids {
			if ctx.Err() != nil {
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			meta, err := e.source.PlaylistMeta(ctx, playlistID)
			if err != nil {
				results <- PlaylistExportResult{
					PlaylistID:   playlistID,
					PlaylistName: fmt.Sprintf("Unknown (%s)", playlistID),
					Error:        fmt.Errorf("failed to fetch playlist: %w", err),
				}
				continue
			}

			tracks, err := e.source.PlaylistTracks(ctx, playlistID)
			if err != nil {
				results <- PlaylistExportResult{
					PlaylistID:   playlistID,
					PlaylistName: meta.Title,
					Error:        fmt.Errorf("failed to fetch tracks: %w", err),
				}
				continue
			}

			e.sendProgress(progress, ProgressUpdate{
				Phase:   FetchSource,
				Step:    i + 1,
				Total:   len(ids),
				Message: fmt.Sprintf("[%d/%d] Exporting: %s...", i+1, len(ids), meta.Title),
			})

			jobs <- exportJob{
				playlistID: playlistID,
				playlist: models.Playlist{
					ID:         meta.ID,
					Name:       meta.Title,
					TrackCount: meta.TrackCount,
				},
				tracks: tracks,
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		result.Results = append(result.Results, res)
		if res.Success {
			result.Succeeded++
		} else {
			result.Failed++
			e.logger.Error("export failed", "playlist", res.PlaylistName, "error", res.Error)
		}
	}

	return result, nil
}

func (e *TransferEngine) exportWorker(wg *sync.WaitGroup, jobs <-chan exportJob, results chan<- PlaylistExportResult, opts ExportOptions) {
	defer wg.Done()

	for job := range jobs {
		data, ext, err := formatter.Export(opts.Format, job.playlist, job.tracks)
		if err != nil {
			results <- PlaylistExportResult{
				PlaylistID:   job.playlistID,
				PlaylistName: job.playlist.Name,
				Error:        err,
			}
			continue
		}

		filename := fmt.Sprintf("%s.%s", sanitizeFilename(job.playlist.Name), ext)
		path := filepath.Join(opts.OutputDir, filename)

		if err := os.WriteFile(path, data, 0644); err != nil {
			results <- PlaylistExportResult{
				PlaylistID:   job.playlistID,
				PlaylistName: job.playlist.Name,
				Error:        fmt.Errorf("failed to write %s: %w", path, err),
			}
			continue
		}

		results <- PlaylistExportResult{
			PlaylistID:   job.playlistID,
			PlaylistName: job.playlist.Name,
			File:         path,
			Success:      true,
		}
	}
}

// sanitizeFilename replaces path-hostile characters so playlist names make
// safe filenames.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		return "playlist"
	}
	return cleaned
}
