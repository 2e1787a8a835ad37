// package tasks implements the playlist transfer pipeline.
//
// The core abstraction is [TransferEngine], which runs a single transfer as
// a sequence of phases: resolve source, fetch tracks, resolve destination,
// prepare destination, process tracks, finalize. Progress is emitted via a
// channel with non-blocking sends for the CLI/UI layer.
package tasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abhishekmj303/ytm2spt/internal/match"
	"github.com/abhishekmj303/ytm2spt/internal/models"
	"github.com/abhishekmj303/ytm2spt/internal/services"
	"github.com/abhishekmj303/ytm2spt/internal/shared"
)

// TransferOptions carries one run's worth of caller input. DestRaw and
// DestName are mutually exclusive, as are CreateNew and DryRun; validation
// happens at the CLI boundary.
type TransferOptions struct {
	SourceRaw string // source playlist URL, URI, or bare ID (required)
	DestRaw   string // destination playlist URL, URI, or bare ID
	DestName  string // destination playlist name to reuse or create
	CreateNew bool   // always create, never reuse by name
	DryRun    bool   // report matches without mutating the destination
	Limit     int    // truncate source list to first N tracks, 0 = unlimited
}

// TransferEngine orchestrates one playlist transfer at a time. Track
// processing is strictly sequential so the destination order mirrors the
// source; the context is checked between tracks, making cancellation
// coarse but safe at track boundaries.
type TransferEngine struct {
	source     services.SourceService
	mutator    *DestinationMutator
	logger     *log.Logger
	httpClient *http.Client
}

// NewTransferEngine creates an engine over an authenticated source service
// and destination mutator.
func NewTransferEngine(source services.SourceService, mutator *DestinationMutator, logger *log.Logger) *TransferEngine {
	return &TransferEngine{
		source:     source,
		mutator:    mutator,
		logger:     logger,
		httpClient: http.DefaultClient,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *TransferEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run executes the full transfer state machine and returns the aggregate
// outcome. Resolution and source-fetch failures are fatal; per-track
// failures are folded into the outcome's unmatched list.
func (e *TransferEngine) Run(ctx context.Context, opts TransferOptions, progress chan<- ProgressUpdate) (*models.TransferOutcome, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}
	if e.mutator == nil {
		return nil, fmt.Errorf("%w: destination service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, resolveSourceUpdate())

	sourceID, err := services.Resolve(opts.SourceRaw, models.Source)
	if err != nil {
		return nil, err
	}

	meta, err := e.source.PlaylistMeta(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source playlist: %w", err)
	}

	tracks, err := e.source.PlaylistTracks(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source tracks: %w", err)
	}

	// The limit truncates the fetched list, preserving original order.
	if opts.Limit > 0 && len(tracks) > opts.Limit {
		tracks = tracks[:opts.Limit]
	}

	e.sendProgress(progress, fetchSourceUpdate(meta.Title, len(tracks)))
	runLogger := shared.WithLogger(e.logger, "run", shared.GenerateID())
	runLogger.Info("fetched source playlist", "title", meta.Title, "tracks", len(tracks))

	outcome := &models.TransferOutcome{
		SourceTitle: meta.Title,
		DryRun:      opts.DryRun,
		Total:       len(tracks),
	}

	destID, created, err := e.resolveDestination(ctx, opts, meta, outcome, progress)
	if err != nil {
		return nil, err
	}
	outcome.DestinationID = destID

	if !opts.DryRun {
		e.prepareDestination(ctx, opts, meta, destID, created, progress)
	}

	if err := e.processTracks(ctx, opts, tracks, destID, outcome, progress); err != nil {
		return outcome, err
	}

	e.sendProgress(progress, finalizeUpdate(outcome))
	return outcome, nil
}

// resolveDestination determines the destination playlist ID per the options,
// creating a playlist when necessary. Returns whether the playlist was newly
// created. In dry-run mode only pure URL parsing happens; no destination
// calls are made.
func (e *TransferEngine) resolveDestination(ctx context.Context, opts TransferOptions, meta *models.PlaylistMeta, outcome *models.TransferOutcome, progress chan<- ProgressUpdate) (string, bool, error) {
	name := opts.DestName
	if name == "" {
		name = meta.Title
	}
	outcome.DestinationName = name

	if opts.DryRun {
		if opts.DestRaw == "" {
			return "", false, nil
		}
		id, err := services.Resolve(opts.DestRaw, models.Destination)
		return id, false, err
	}

	e.sendProgress(progress, resolveDestUpdate(name))

	if opts.DestRaw != "" {
		id, err := services.Resolve(opts.DestRaw, models.Destination)
		if err != nil {
			return "", false, err
		}

		if existing, nameErr := e.mutator.PlaylistName(ctx, id); nameErr == nil {
			outcome.DestinationName = existing
		}
		return id, false, nil
	}

	if opts.DestName != "" && !opts.CreateNew {
		id, found, err := e.mutator.FindPlaylistByName(ctx, opts.DestName)
		if err != nil {
			return "", false, fmt.Errorf("failed to look up destination playlist: %w", err)
		}
		if found {
			e.logger.Info("reusing existing playlist", "name", opts.DestName, "id", id)
			return id, false, nil
		}
	}

	id, err := e.mutator.CreatePlaylist(ctx, name, "")
	if err != nil {
		return "", false, fmt.Errorf("failed to create destination playlist: %w", err)
	}
	return id, true, nil
}

// prepareDestination copies the source cover and, when reusing an existing
// playlist, refreshes the description and empties its tracks. Every failure
// here is a logged warning, never fatal.
func (e *TransferEngine) prepareDestination(ctx context.Context, opts TransferOptions, meta *models.PlaylistMeta, destID string, created bool, progress chan<- ProgressUpdate) {
	e.sendProgress(progress, prepareDestUpdate("Preparing destination playlist..."))

	if cover, err := fetchCover(ctx, e.httpClient, meta.Thumbnails); err != nil {
		e.logger.Warn("skipping cover image", "error", err)
	} else if e.mutator.SetCoverImage(ctx, destID, cover) {
		e.logger.Info("copied cover image", "playlist", destID)
	}

	if created || opts.CreateNew {
		return
	}

	if err := e.mutator.SetDescription(ctx, destID, ""); err != nil {
		e.logger.Warn("failed to set description", "playlist", destID, "error", err)
	}
	if err := e.mutator.EmptyPlaylist(ctx, destID); err != nil {
		e.logger.Warn("failed to empty playlist", "playlist", destID, "error", err)
	}
}

// processTracks walks the source list in order, searching the destination
// catalog per track and adding the first hit. A track with no hit lands in
// the unmatched list and the run continues. Cancellation is honored between
// tracks.
func (e *TransferEngine) processTracks(ctx context.Context, opts TransferOptions, tracks []models.Track, destID string, outcome *models.TransferOutcome, progress chan<- ProgressUpdate) error {
	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("transfer cancelled after %d of %d tracks: %w", i, len(tracks), err)
		}

		cleaned := match.CleanTrack(track)
		e.sendProgress(progress, processTrackUpdate(i+1, len(tracks), cleaned))

		query := strings.TrimSpace(cleaned.Title + " " + cleaned.Artist)

		result, err := e.mutator.SearchCatalog(ctx, query)
		if err != nil {
			e.logger.Error("search failed, treating as not found", "query", query, "error", err)
			result = models.SearchResult{Query: query}
		}

		// Scoring informs the log only; selection always takes the
		// first hit.
		if !match.FuzzyMatchArtist(e.logger, match.ArtistNames(result), cleaned.Artist) {
			e.logger.Warn("artist mismatch on best guess", "artist", cleaned.Artist, "title", cleaned.Title)
		}

		if result.Empty() {
			e.logger.Warn("no match found", "artist", cleaned.Artist, "title", cleaned.Title)
			outcome.Unmatched = append(outcome.Unmatched, models.UnmatchedTrack{
				Position: i + 1,
				Artist:   cleaned.Artist,
				Title:    cleaned.Title,
			})
			continue
		}

		outcome.Found++
		if opts.DryRun {
			continue
		}

		if e.mutator.AddTrack(ctx, destID, result.Candidates[0].URI) {
			outcome.Added++
		}
	}

	return nil
}
