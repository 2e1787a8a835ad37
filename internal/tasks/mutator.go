package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhishekmj303/ytm2spt/internal/models"
	"github.com/abhishekmj303/ytm2spt/internal/services"
)

// SearchCacher memoizes resolved catalog queries. Implemented by
// repositories.SearchCacheRepository; nil disables caching.
type SearchCacher interface {
	Get(query string) (models.Candidate, bool, error)
	Put(query string, candidate models.Candidate) error
}

// DestinationMutator wraps a [services.DestinationService] with the
// idempotent primitives the transfer engine needs. Each method is one round
// trip; add/cover/description failures are logged and reported as booleans
// rather than raised, so a single failure never aborts a batch.
type DestinationMutator struct {
	dest   services.DestinationService
	cache  SearchCacher
	logger *log.Logger
}

// NewDestinationMutator creates a mutator over the given destination
// service. cache may be nil.
func NewDestinationMutator(dest services.DestinationService, cache SearchCacher, logger *log.Logger) *DestinationMutator {
	return &DestinationMutator{dest: dest, cache: cache, logger: logger}
}

// GenerateDescription returns the provenance string stamped onto created
// playlists.
func GenerateDescription() string {
	return fmt.Sprintf("Youtube Playlist Imported on %s by github.com/abhishekmj303/ytm2spt",
		time.Now().Format("Jan 02, 2006"))
}

// FindPlaylistByName scans the user's playlists for an exact name match.
// First match wins if duplicates exist.
func (m *DestinationMutator) FindPlaylistByName(ctx context.Context, name string) (string, bool, error) {
	playlists, err := m.dest.Playlists(ctx)
	if err != nil {
		return "", false, err
	}

	for _, playlist := range playlists {
		if playlist.Name == name {
			return playlist.ID, true, nil
		}
	}

	return "", false, nil
}

// CreatePlaylist creates a new private playlist. An empty description
// defaults to the generated provenance string. Duplicate-avoidance is the
// caller's responsibility.
func (m *DestinationMutator) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	if description == "" {
		description = GenerateDescription()
	}

	id, err := m.dest.CreatePlaylist(ctx, name, description)
	if err != nil {
		return "", err
	}

	m.logger.Info("created playlist", "name", name, "id", id)
	return id, nil
}

// EmptyPlaylist removes all tracks from a playlist in one batch call. A
// no-op if the playlist is already empty.
func (m *DestinationMutator) EmptyPlaylist(ctx context.Context, playlistID string) error {
	trackIDs, err := m.dest.PlaylistTrackIDs(ctx, playlistID)
	if err != nil {
		return err
	}

	if len(trackIDs) == 0 {
		m.logger.Info("playlist already empty", "playlist", playlistID)
		return nil
	}

	if err := m.dest.RemoveTracks(ctx, playlistID, trackIDs); err != nil {
		return err
	}

	m.logger.Info("emptied playlist", "playlist", playlistID, "removed", len(trackIDs))
	return nil
}

// AddTrack appends a single track and reports whether the add succeeded.
// Failures are logged, never propagated.
func (m *DestinationMutator) AddTrack(ctx context.Context, playlistID, trackURI string) bool {
	if err := m.dest.AddTracks(ctx, playlistID, []string{trackURI}); err != nil {
		m.logger.Error("failed to add track", "playlist", playlistID, "uri", trackURI, "error", err)
		return false
	}
	return true
}

// SetCoverImage uploads a base64 JPEG cover and reports whether it
// succeeded. Failures are logged, never propagated.
func (m *DestinationMutator) SetCoverImage(ctx context.Context, playlistID, base64JPEG string) bool {
	if err := m.dest.UploadCover(ctx, playlistID, base64JPEG); err != nil {
		m.logger.Warn("failed to set cover image", "playlist", playlistID, "error", err)
		return false
	}
	return true
}

// SetDescription replaces a playlist's description, defaulting to the
// generated provenance string when text is empty.
func (m *DestinationMutator) SetDescription(ctx context.Context, playlistID, text string) error {
	if text == "" {
		text = GenerateDescription()
	}
	return m.dest.SetDescription(ctx, playlistID, text)
}

// PlaylistName retrieves the display name of a playlist.
func (m *DestinationMutator) PlaylistName(ctx context.Context, playlistID string) (string, error) {
	return m.dest.PlaylistName(ctx, playlistID)
}

// SearchCatalog runs a free-text track search, consulting the cache first
// when one is configured. The first candidate of a successful search is
// memoized; cache failures are logged and otherwise ignored.
func (m *DestinationMutator) SearchCatalog(ctx context.Context, query string) (models.SearchResult, error) {
	if m.cache != nil {
		candidate, hit, err := m.cache.Get(query)
		if err != nil {
			m.logger.Warn("search cache read failed", "query", query, "error", err)
		} else if hit {
			m.logger.Debug("search cache hit", "query", query, "uri", candidate.URI)
			return models.SearchResult{Query: query, Candidates: []models.Candidate{candidate}}, nil
		}
	}

	result, err := m.dest.Search(ctx, query, services.SearchLimit)
	if err != nil {
		return models.SearchResult{}, err
	}

	if m.cache != nil && !result.Empty() {
		if err := m.cache.Put(query, result.Candidates[0]); err != nil {
			m.logger.Warn("search cache write failed", "query", query, "error", err)
		}
	}

	return result, nil
}
