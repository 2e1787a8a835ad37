package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhishekmj303/ytm2spt/internal/shared"
)

func TestYouTubeService(t *testing.T) {
	t.Run("NewYouTubeService", func(t *testing.T) {
		srv := NewYouTubeService("", 10*time.Second)
		if srv.baseURL != defaultYTBaseURL {
			t.Errorf("expected default base URL, got %s", srv.baseURL)
		}
		if srv.Name() != "YouTube Music" {
			t.Errorf("expected service name 'YouTube Music', got %s", srv.Name())
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv := NewYouTubeService("", 10*time.Second)

		if err := srv.Authenticate(context.Background(), map[string]string{}); err == nil {
			t.Error("expected error for missing auth_file")
		}

		if err := srv.Authenticate(context.Background(), map[string]string{"auth_file": "browser.json"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if srv.authFile != "browser.json" {
			t.Errorf("expected auth file to be stored, got %s", srv.authFile)
		}
	})

	t.Run("PlaylistMeta", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/playlists/PLtest" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.Header.Get("X-Auth-File") != "browser.json" {
				t.Errorf("expected auth file header, got %s", r.Header.Get("X-Auth-File"))
			}

			json.NewEncoder(w).Encode(map[string]any{
				"id":         "PLtest",
				"title":      "My Mix",
				"trackCount": 2,
				"thumbnails": []map[string]any{
					{"url": "https://img/small.jpg", "width": 60, "height": 60},
					{"url": "https://img/large.jpg", "width": 544, "height": 544},
				},
			})
		}))
		defer server.Close()

		srv := NewYouTubeService(server.URL, 10*time.Second)
		srv.authFile = "browser.json"

		meta, err := srv.PlaylistMeta(context.Background(), "PLtest")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Title != "My Mix" {
			t.Errorf("expected title 'My Mix', got %s", meta.Title)
		}
		if len(meta.Thumbnails) != 2 {
			t.Fatalf("expected 2 thumbnails, got %d", len(meta.Thumbnails))
		}
		if meta.Thumbnails[1].URL != "https://img/large.jpg" {
			t.Errorf("expected largest thumbnail last, got %s", meta.Thumbnails[1].URL)
		}
	})

	t.Run("PlaylistTracks", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id":    "PLtest",
				"title": "My Mix",
				"tracks": []map[string]any{
					{
						"videoId": "vid1",
						"title":   "First Song",
						"artists": []map[string]any{{"name": "First Artist"}},
					},
					{
						"videoId": "vid2",
						"title":   "Orphan Song",
						"artists": []map[string]any{},
					},
				},
			})
		}))
		defer server.Close()

		srv := NewYouTubeService(server.URL, 10*time.Second)

		tracks, err := srv.PlaylistTracks(context.Background(), "PLtest")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].Artist != "First Artist" || tracks[0].Title != "First Song" {
			t.Errorf("unexpected first track: %+v", tracks[0])
		}
		if tracks[1].Artist != "" {
			t.Errorf("expected empty artist for orphan track, got %s", tracks[1].Artist)
		}
	})

	t.Run("Playlists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/library/playlists" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]map[string]any{
				{"playlistId": "PL1", "title": "Liked", "count": 10, "privacy": "PRIVATE"},
				{"playlistId": "PL2", "title": "Shared", "count": 3, "privacy": "PUBLIC"},
			})
		}))
		defer server.Close()

		srv := NewYouTubeService(server.URL, 10*time.Second)

		playlists, err := srv.Playlists(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].Public {
			t.Error("expected first playlist to be private")
		}
		if !playlists[1].Public {
			t.Error("expected second playlist to be public")
		}
	})

	t.Run("Error Responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/playlists/missing":
				w.WriteHeader(http.StatusNotFound)
			default:
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"detail": "proxy exploded"})
			}
		}))
		defer server.Close()

		srv := NewYouTubeService(server.URL, 10*time.Second)

		_, err := srv.PlaylistMeta(context.Background(), "missing")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}

		_, err = srv.PlaylistMeta(context.Background(), "other")
		if !errors.Is(err, shared.ErrSourceService) {
			t.Errorf("expected ErrSourceService, got %v", err)
		}
	})
}
