package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./ytm2spt.db" {
			t.Errorf("expected database path ./ytm2spt.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.YouTube.ProxyURL != "http://127.0.0.1:8080" {
			t.Errorf("expected youtube proxy URL http://127.0.0.1:8080, got %s", config.Credentials.YouTube.ProxyURL)
		}

		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if config.HTTP.Timeout() != 30*time.Second {
			t.Errorf("expected default timeout 30s, got %s", config.HTTP.Timeout())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("loading missing config should fail")
		}

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(configPath); err == nil {
			t.Error("loading malformed config should fail")
		}
	})

	t.Run("SaveConfig Roundtrip", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "abc123"
		config.Credentials.Spotify.AccessToken = "tok"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}

		if loaded.Credentials.Spotify.ClientID != "abc123" {
			t.Errorf("expected client_id abc123, got %s", loaded.Credentials.Spotify.ClientID)
		}
		if loaded.Credentials.Spotify.AccessToken != "tok" {
			t.Errorf("expected access token to persist, got %s", loaded.Credentials.Spotify.AccessToken)
		}
	})
}

func TestSpotifyConfigToken(t *testing.T) {
	t.Run("Update and Token roundtrip", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		sc := &SpotifyConfig{}

		err := sc.Update(&oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			Expiry:       expiry,
		})
		if err != nil {
			t.Fatalf("failed to update token: %v", err)
		}

		token := sc.Token()
		if token == nil {
			t.Fatal("expected a reconstructed token")
		}
		if token.AccessToken != "access" || token.RefreshToken != "refresh" {
			t.Errorf("token fields not preserved: %+v", token)
		}
		if !token.Expiry.Equal(expiry) {
			t.Errorf("expected expiry %s, got %s", expiry, token.Expiry)
		}
	})

	t.Run("Update keeps previous refresh token", func(t *testing.T) {
		sc := &SpotifyConfig{RefreshToken: "old-refresh"}

		if err := sc.Update(&oauth2.Token{AccessToken: "access"}); err != nil {
			t.Fatalf("failed to update token: %v", err)
		}

		if sc.RefreshToken != "old-refresh" {
			t.Errorf("expected refresh token to survive, got %s", sc.RefreshToken)
		}
	})

	t.Run("Update rejects empty token", func(t *testing.T) {
		sc := &SpotifyConfig{}
		if err := sc.Update(nil); err == nil {
			t.Error("expected error for nil token")
		}
		if err := sc.Update(&oauth2.Token{}); err == nil {
			t.Error("expected error for empty access token")
		}
	})

	t.Run("Token returns nil when unset", func(t *testing.T) {
		sc := &SpotifyConfig{}
		if sc.Token() != nil {
			t.Error("expected nil token for empty credentials")
		}
	})
}
