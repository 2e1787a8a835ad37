// package services defines the source and destination provider interfaces
// and implements them for YouTube Music (via proxy) and Spotify.
package services

import (
	"context"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

// SourceService is a read-only catalog provider that playlists are copied
// from.
type SourceService interface {
	// Authenticate prepares the service for requests. Returns an error if
	// the supplied credentials are unusable.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// PlaylistMeta retrieves a playlist's title and thumbnails by ID.
	PlaylistMeta(ctx context.Context, playlistID string) (*models.PlaylistMeta, error)

	// PlaylistTracks retrieves the full ordered track list of a playlist.
	PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error)

	// Playlists retrieves all playlists in the authenticated user's library.
	Playlists(ctx context.Context) ([]models.Playlist, error)

	// Name returns the service name (e.g. "YouTube Music").
	Name() string
}

// DestinationService is a writable catalog provider that playlists are
// copied into. Each method is one round trip.
type DestinationService interface {
	// Authenticate performs OAuth authentication with the service.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// Search runs a free-text track search, returning up to limit
	// candidates in the service's own relevance order.
	Search(ctx context.Context, query string, limit int) (models.SearchResult, error)

	// Playlists retrieves all playlists owned by the authenticated user.
	Playlists(ctx context.Context) ([]models.Playlist, error)

	// CreatePlaylist creates a new private playlist and returns its ID.
	CreatePlaylist(ctx context.Context, name, description string) (string, error)

	// PlaylistName retrieves the display name of a playlist.
	PlaylistName(ctx context.Context, playlistID string) (string, error)

	// SetDescription replaces a playlist's description.
	SetDescription(ctx context.Context, playlistID, text string) error

	// PlaylistTrackIDs retrieves the IDs of all tracks currently in a
	// playlist.
	PlaylistTrackIDs(ctx context.Context, playlistID string) ([]string, error)

	// RemoveTracks removes the given track IDs from a playlist in one
	// batch call.
	RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// AddTracks appends the given track URIs to a playlist.
	AddTracks(ctx context.Context, playlistID string, trackURIs []string) error

	// UploadCover sets a playlist's cover image from base64-encoded JPEG
	// data.
	UploadCover(ctx context.Context, playlistID, base64JPEG string) error

	// Name returns the service name (e.g. "Spotify").
	Name() string
}
