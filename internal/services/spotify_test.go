package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/abhishekmj303/ytm2spt/internal/shared"
)

func testCredentials() map[string]string {
	return map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
		"redirect_uri":  "http://localhost:3000/callback",
		"user_id":       "test_user",
	}
}

// testSpotifyService wires a service to an httptest server, bypassing the
// oauth2 transport.
func testSpotifyService(t *testing.T, handler http.Handler) (*SpotifyService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	srv, err := NewSpotifyService(testCredentials(), 10*time.Second, 1000)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	srv.baseURL = server.URL
	srv.token = &oauth2.Token{AccessToken: "test_token"}

	return srv, server
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(testCredentials(), 10*time.Second, 10)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_secret": "x"}, 10*time.Second, 10)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_id": "x"}, 10*time.Second, 10)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("GetAuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials(), 10*time.Second, 10)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.GetAuthURL("test_state")
		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Errorf("expected spotify auth host in %s", authURL)
		}
		if !strings.Contains(authURL, "state=test_state") {
			t.Errorf("expected state parameter in %s", authURL)
		}
		if !strings.Contains(authURL, "ugc-image-upload") {
			t.Errorf("expected image upload scope in %s", authURL)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials(), 10*time.Second, 10)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		if err := srv.Authenticate(context.Background(), map[string]string{}); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}

		if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "tok"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Not Authenticated Request", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials(), 10*time.Second, 10)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = srv.Search(context.Background(), "anything", 10)
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Search", func(t *testing.T) {
		srv, _ := testSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("q") != "Life Is Good Drake" {
				t.Errorf("unexpected query: %s", q.Get("q"))
			}
			if q.Get("type") != "track" || q.Get("limit") != "10" {
				t.Errorf("unexpected search params: %s", r.URL.RawQuery)
			}

			json.NewEncoder(w).Encode(map[string]any{
				"tracks": map[string]any{
					"items": []map[string]any{
						{
							"id":      "track1",
							"name":    "Life Is Good",
							"uri":     "spotify:track:track1",
							"artists": []map[string]any{{"name": "Drake"}, {"name": "Future"}},
							"album":   map[string]any{"name": "Single"},
						},
					},
				},
			})
		}))

		result, err := srv.Search(context.Background(), "Life Is Good Drake", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Empty() {
			t.Fatal("expected candidates")
		}
		candidate := result.Candidates[0]
		if candidate.URI != "spotify:track:track1" {
			t.Errorf("unexpected URI: %s", candidate.URI)
		}
		if candidate.Artist != "Drake" {
			t.Errorf("expected primary artist Drake, got %s", candidate.Artist)
		}
	})

	t.Run("Playlists Pagination", func(t *testing.T) {
		var server *httptest.Server
		calls := 0

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			offset := r.URL.Query().Get("offset")

			page := map[string]any{
				"items": []map[string]any{
					{"id": "pl" + offset, "name": "Playlist " + offset, "tracks": map[string]int{"total": 1}},
				},
			}
			if offset == "0" {
				next := server.URL + "/me/playlists?offset=50"
				page["next"] = next
			}
			json.NewEncoder(w).Encode(page)
		})

		srv, s := testSpotifyService(t, handler)
		server = s

		playlists, err := srv.Playlists(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 2 {
			t.Errorf("expected 2 pages fetched, got %d", calls)
		}
		if len(playlists) != 2 {
			t.Errorf("expected 2 playlists, got %d", len(playlists))
		}
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		srv, _ := testSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/users/test_user/playlists" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}

			var body struct {
				Name        string `json:"name"`
				Description string `json:"description"`
				Public      bool   `json:"public"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.Name != "New Mix" {
				t.Errorf("unexpected name: %s", body.Name)
			}
			if body.Public {
				t.Error("created playlists should be private")
			}

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "created123"})
		}))

		id, err := srv.CreatePlaylist(context.Background(), "New Mix", "desc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "created123" {
			t.Errorf("expected created123, got %s", id)
		}
	})

	t.Run("RemoveTracks", func(t *testing.T) {
		srv, _ := testSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}

			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), "spotify:track:abc") {
				t.Errorf("expected track URI in body: %s", string(body))
			}
			w.WriteHeader(http.StatusOK)
		}))

		if err := srv.RemoveTracks(context.Background(), "pl1", []string{"abc"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Empty removal is a no-op with no round trip.
		if err := srv.RemoveTracks(context.Background(), "pl1", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("AddTracks", func(t *testing.T) {
		srv, _ := testSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}

			var body struct {
				URIs []string `json:"uris"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if len(body.URIs) != 1 || body.URIs[0] != "spotify:track:xyz" {
				t.Errorf("unexpected uris: %v", body.URIs)
			}
			w.WriteHeader(http.StatusCreated)
		}))

		if err := srv.AddTracks(context.Background(), "pl1", []string{"spotify:track:xyz"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("UploadCover", func(t *testing.T) {
		srv, _ := testSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "image/jpeg" {
				t.Errorf("expected image/jpeg content type, got %s", ct)
			}

			body, _ := io.ReadAll(r.Body)
			if string(body) != "base64data" {
				t.Errorf("expected raw base64 body, got %s", string(body))
			}
			w.WriteHeader(http.StatusAccepted)
		}))

		if err := srv.UploadCover(context.Background(), "pl1", "base64data"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("PlaylistTrackIDs", func(t *testing.T) {
		srv, _ := testSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"track": map[string]string{"id": "a"}},
					{"track": map[string]string{"id": "b"}},
					{"track": map[string]string{"id": ""}},
				},
			})
		}))

		ids, err := srv.PlaylistTrackIDs(context.Background(), "pl1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ids) != 2 {
			t.Errorf("expected local tracks without IDs skipped, got %v", ids)
		}
	})

	t.Run("Error Mapping", func(t *testing.T) {
		srv, _ := testSpotifyService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("q") {
			case "expired":
				w.WriteHeader(http.StatusUnauthorized)
			case "throttled":
				w.Header().Set("Retry-After", "3")
				w.WriteHeader(http.StatusTooManyRequests)
			default:
				w.WriteHeader(http.StatusBadGateway)
			}
		}))

		if _, err := srv.Search(context.Background(), "expired", 10); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
		if _, err := srv.Search(context.Background(), "throttled", 10); !errors.Is(err, shared.ErrDestinationService) {
			t.Errorf("expected ErrDestinationService, got %v", err)
		}
		if _, err := srv.Search(context.Background(), "boom", 10); !errors.Is(err, shared.ErrDestinationService) {
			t.Errorf("expected ErrDestinationService, got %v", err)
		}
	})
}
