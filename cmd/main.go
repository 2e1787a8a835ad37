package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/abhishekmj303/ytm2spt/internal/repositories"
	"github.com/abhishekmj303/ytm2spt/internal/services"
	"github.com/abhishekmj303/ytm2spt/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	if os.Getenv("YTM2SPT_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	var spotifyService *services.SpotifyService
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(
			config.Credentials.Spotify.Map(), config.HTTP.Timeout(), config.HTTP.SpotifyRateLimit); err == nil {
			spotifyService = svc
		} else {
			logger.Warn("spotify service unavailable", "error", err)
		}
	}

	youtubeService := services.NewYouTubeService(config.Credentials.YouTube.ProxyURL, config.HTTP.Timeout())

	var db *sql.DB
	var cache *repositories.SearchCacheRepository
	if config.Database.Path != "" {
		if _, err := os.Stat(config.Database.Path); err == nil {
			if db, err = shared.NewDatabase(config.Database.Path); err == nil {
				shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
				cache = repositories.NewSearchCacheRepository(db)
			} else {
				logger.Warn("search cache unavailable", "error", err)
			}
		}
	}
	if db != nil {
		defer db.Close()
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Source:     youtubeService,
		Spotify:    spotifyService,
		Cache:      cache,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "ytm2spt",
		Usage:    "Transfer playlists from YouTube Music to Spotify",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
