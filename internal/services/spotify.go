// Spotify API implementation of [DestinationService]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/abhishekmj303/ytm2spt/internal/models"
	"github.com/abhishekmj303/ytm2spt/internal/shared"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SearchLimit is the page size for catalog searches.
const SearchLimit = 10

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
	URI     string          `json:"uri"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type simplePlaylistTrack struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Tracks      simplePlaylistTrack `json:"tracks"`
	URI         string              `json:"uri"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
type SpotifyPaginatedPlaylists struct {
	Items  []SpotifySimplePlaylist `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
	Next   *string                 `json:"next"`
}

// SpotifyService implements [DestinationService] for the Spotify Web API.
// Uses [oauth2] for authentication and a [rate.Limiter] to stay under the
// API's request ceiling.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
	userID     string
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2
// credentials. The requestsPerSecond cap defaults to 10 when zero.
func NewSpotifyService(credentials map[string]string, timeout time.Duration, requestsPerSecond float64) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"playlist-read-private",
			"playlist-read-collaborative",
			"playlist-modify-private",
			"playlist-modify-public",
			"ugc-image-upload",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		userID:     credentials["user_id"],
		baseURL:    spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// OAuthConfig exposes the underlying OAuth2 config for the callback server.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// Exchange trades an authorization code for a token and installs it.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
	}

	s.installToken(ctx, token)
	return token, nil
}

// Authenticate installs a previously persisted token. Expects credentials
// containing "access_token" and optionally "refresh_token"; a refresh token
// lets the underlying client renew access transparently.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	accessToken := credentials["access_token"]
	refreshToken := credentials["refresh_token"]
	if accessToken == "" && refreshToken == "" {
		return fmt.Errorf("%w: missing access_token or refresh_token", shared.ErrNotAuthenticated)
	}

	s.installToken(ctx, &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
	return nil
}

// AuthenticateToken installs a reconstructed [oauth2.Token] directly.
func (s *SpotifyService) AuthenticateToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil || (token.AccessToken == "" && token.RefreshToken == "") {
		return fmt.Errorf("%w: empty token", shared.ErrNotAuthenticated)
	}

	s.installToken(ctx, token)
	return nil
}

func (s *SpotifyService) installToken(ctx context.Context, token *oauth2.Token) {
	timeout := s.httpClient.Timeout

	s.token = token
	s.httpClient = s.config.Client(ctx, token)
	s.httpClient.Timeout = timeout
}

// doRequest performs an authenticated, rate-limited HTTP request against
// the Spotify API. A non-nil body is JSON-encoded unless it is already a
// raw string, which is sent verbatim (cover uploads).
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDestinationService, err)
	}

	var reqBody *bytes.Reader
	contentType := "application/json"

	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewReader(nil)
	case string:
		reqBody = bytes.NewReader([]byte(b))
		contentType = "image/jpeg"
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDestinationService, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", shared.ErrTokenExpired, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limited (retry-after %s)", shared.ErrDestinationService, resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", shared.ErrPlaylistNotFound, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrDestinationService, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrDestinationService, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserID returns the configured user ID, fetching the profile once if it
// wasn't supplied in the credentials.
func (s *SpotifyService) UserID(ctx context.Context) (string, error) {
	if s.userID != "" {
		return s.userID, nil
	}

	user, err := s.UserProfile(ctx)
	if err != nil {
		return "", err
	}

	s.userID = user.ID
	return s.userID, nil
}

// Search runs a free-text track search, returning up to limit candidates
// in Spotify's own relevance order. The candidate artist is the track's
// primary artist.
func (s *SpotifyService) Search(ctx context.Context, query string, limit int) (models.SearchResult, error) {
	if limit <= 0 {
		limit = SearchLimit
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), limit)

	var response struct {
		Tracks struct {
			Items []SpotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return models.SearchResult{}, err
	}

	result := models.SearchResult{Query: query}
	for _, item := range response.Tracks.Items {
		candidate := models.Candidate{
			URI:   item.URI,
			Title: item.Name,
			Album: item.Album.Name,
		}
		if len(item.Artists) > 0 {
			candidate.Artist = item.Artists[0].Name
		}
		result.Candidates = append(result.Candidates, candidate)
	}

	return result, nil
}

// Playlists retrieves all playlists owned by the authenticated user,
// following pagination.
func (s *SpotifyService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	var allPlaylists []models.Playlist
	limit := 50
	offset := 0

	for {
		endpoint := fmt.Sprintf("/me/playlists?limit=%d&offset=%d", limit, offset)

		var response SpotifyPaginatedPlaylists
		if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
			return nil, err
		}

		for _, sp := range response.Items {
			allPlaylists = append(allPlaylists, models.Playlist{
				ID:          sp.ID,
				Name:        sp.Name,
				Description: sp.Description,
				TrackCount:  sp.Tracks.Total,
				Public:      sp.Public,
			})
		}

		if response.Next == nil {
			break
		}
		offset += limit
	}

	return allPlaylists, nil
}

// CreatePlaylist creates a new private playlist and returns its ID.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return "", err
	}

	body := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Public      bool   `json:"public"`
	}{Name: name, Description: description, Public: false}

	var created struct {
		ID string `json:"id"`
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	if err := s.doRequest(ctx, http.MethodPost, endpoint, body, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}

// PlaylistName retrieves the display name of a playlist.
func (s *SpotifyService) PlaylistName(ctx context.Context, playlistID string) (string, error) {
	var playlist struct {
		Name string `json:"name"`
	}

	endpoint := fmt.Sprintf("/playlists/%s?fields=name", playlistID)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &playlist); err != nil {
		return "", err
	}

	return playlist.Name, nil
}

// SetDescription replaces a playlist's description.
func (s *SpotifyService) SetDescription(ctx context.Context, playlistID, text string) error {
	body := struct {
		Description string `json:"description"`
	}{Description: text}

	endpoint := fmt.Sprintf("/playlists/%s", playlistID)
	return s.doRequest(ctx, http.MethodPut, endpoint, body, nil)
}

// PlaylistTrackIDs retrieves the IDs of all tracks currently in a playlist,
// following pagination.
func (s *SpotifyService) PlaylistTrackIDs(ctx context.Context, playlistID string) ([]string, error) {
	var trackIDs []string
	limit := 100
	offset := 0

	for {
		endpoint := fmt.Sprintf("/playlists/%s/tracks?fields=items(track(id)),next&limit=%d&offset=%d",
			playlistID, limit, offset)

		var response struct {
			Items []struct {
				Track struct {
					ID string `json:"id"`
				} `json:"track"`
			} `json:"items"`
			Next *string `json:"next"`
		}
		if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
			return nil, err
		}

		for _, item := range response.Items {
			if item.Track.ID != "" {
				trackIDs = append(trackIDs, item.Track.ID)
			}
		}

		if response.Next == nil {
			break
		}
		offset += limit
	}

	return trackIDs, nil
}

// RemoveTracks removes the given track IDs from a playlist in one batch
// call.
func (s *SpotifyService) RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}

	type trackURI struct {
		URI string `json:"uri"`
	}

	body := struct {
		Tracks []trackURI `json:"tracks"`
	}{Tracks: make([]trackURI, len(trackIDs))}

	for i, id := range trackIDs {
		uri := id
		if !strings.HasPrefix(uri, "spotify:track:") {
			uri = "spotify:track:" + uri
		}
		body.Tracks[i] = trackURI{URI: uri}
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	return s.doRequest(ctx, http.MethodDelete, endpoint, body, nil)
}

// AddTracks appends the given track URIs to a playlist.
func (s *SpotifyService) AddTracks(ctx context.Context, playlistID string, trackURIs []string) error {
	if len(trackURIs) == 0 {
		return nil
	}

	body := struct {
		URIs []string `json:"uris"`
	}{URIs: trackURIs}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	return s.doRequest(ctx, http.MethodPost, endpoint, body, nil)
}

// UploadCover sets a playlist's cover image from base64-encoded JPEG data.
func (s *SpotifyService) UploadCover(ctx context.Context, playlistID, base64JPEG string) error {
	endpoint := fmt.Sprintf("/playlists/%s/images", playlistID)
	return s.doRequest(ctx, http.MethodPut, endpoint, base64JPEG, nil)
}
