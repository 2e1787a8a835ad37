// YouTube Music [SourceService] implementation.
//
// Communicates with the FastAPI proxy server wrapping ytmusicapi.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/abhishekmj303/ytm2spt/internal/models"
	"github.com/abhishekmj303/ytm2spt/internal/shared"
)

const defaultYTBaseURL string = "http://127.0.0.1:8080"

// YouTubeImage represents an image/thumbnail from YouTube Music.
type YouTubeImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeArtist represents an artist in YouTube Music responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeTrack represents a track/video in YouTube Music responses.
type YouTubeTrack struct {
	VideoID    string          `json:"videoId"`
	Title      string          `json:"title"`
	Artists    []YouTubeArtist `json:"artists"`
	Duration   string          `json:"duration"`
	Thumbnails []YouTubeImage  `json:"thumbnails"`
}

// YouTubePlaylist represents a playlist from YouTube Music. Thumbnails are
// ordered smallest to largest, as returned by the API.
type YouTubePlaylist struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Privacy     string         `json:"privacy"`
	Thumbnails  []YouTubeImage `json:"thumbnails"`
	TrackCount  int            `json:"trackCount"`
	Tracks      []YouTubeTrack `json:"tracks,omitempty"`
}

// YouTubeService implements [SourceService] for YouTube Music via the proxy.
type YouTubeService struct {
	baseURL    string
	authFile   string
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube Music service instance.
func NewYouTubeService(baseURL string, timeout time.Duration) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	return &YouTubeService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube Music"
}

// Authenticate stores the authentication file path for subsequent requests.
//
// Expects credentials["auth_file"] to contain the path to browser.json or
// oauth.json.
func (y *YouTubeService) Authenticate(ctx context.Context, credentials map[string]string) error {
	authFile, ok := credentials["auth_file"]
	if !ok || authFile == "" {
		return fmt.Errorf("%w: missing auth_file", shared.ErrMissingCredentials)
	}

	y.authFile = authFile
	return nil
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if y.authFile != "" {
		req.Header.Set("X-Auth-File", y.authFile)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: status %d", shared.ErrPlaylistNotFound, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrSourceService, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrSourceService, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// PlaylistMeta retrieves a playlist's title and thumbnails.
//
// Calls GET /api/playlists/{id} on the proxy.
func (y *YouTubeService) PlaylistMeta(ctx context.Context, playlistID string) (*models.PlaylistMeta, error) {
	var ytPlaylist YouTubePlaylist

	endpoint := fmt.Sprintf("/api/playlists/%s", playlistID)
	if err := y.doRequest(ctx, endpoint, &ytPlaylist); err != nil {
		return nil, err
	}

	meta := &models.PlaylistMeta{
		ID:         ytPlaylist.ID,
		Title:      ytPlaylist.Title,
		TrackCount: ytPlaylist.TrackCount,
	}
	for _, img := range ytPlaylist.Thumbnails {
		meta.Thumbnails = append(meta.Thumbnails, models.Thumbnail{
			URL:    img.URL,
			Width:  img.Width,
			Height: img.Height,
		})
	}

	return meta, nil
}

// PlaylistTracks retrieves the full ordered track list of a playlist.
//
// Calls GET /api/playlists/{id} on the proxy. Tracks without a listed
// artist keep an empty artist field rather than being dropped.
func (y *YouTubeService) PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	var ytPlaylist YouTubePlaylist

	endpoint := fmt.Sprintf("/api/playlists/%s", playlistID)
	if err := y.doRequest(ctx, endpoint, &ytPlaylist); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, len(ytPlaylist.Tracks))
	for i, ytt := range ytPlaylist.Tracks {
		track := models.Track{Title: ytt.Title}
		if len(ytt.Artists) > 0 {
			track.Artist = ytt.Artists[0].Name
		}
		tracks[i] = track
	}

	return tracks, nil
}

// Playlists retrieves all playlists in the authenticated user's library.
//
// Calls GET /api/library/playlists on the proxy.
func (y *YouTubeService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	var ytPlaylists []struct {
		PlaylistID  string         `json:"playlistId"`
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Privacy     string         `json:"privacy"`
		Count       int            `json:"count"`
		Thumbnails  []YouTubeImage `json:"thumbnails"`
	}

	if err := y.doRequest(ctx, "/api/library/playlists", &ytPlaylists); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, len(ytPlaylists))
	for i, ytp := range ytPlaylists {
		playlists[i] = models.Playlist{
			ID:          ytp.PlaylistID,
			Name:        ytp.Title,
			Description: ytp.Description,
			TrackCount:  ytp.Count,
			Public:      ytp.Privacy == "PUBLIC",
		}
	}

	return playlists, nil
}
