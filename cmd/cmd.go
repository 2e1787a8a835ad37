// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// transferCommand runs the YouTube Music → Spotify playlist transfer.
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Transfer a YouTube Music playlist to Spotify",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "youtube-url-or-id",
				Aliases:  []string{"yt", "youtube"},
				Usage:    "YouTube Music playlist URL or ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "spotify-url-or-id",
				Aliases: []string{"sp", "spotify"},
				Usage:   "Spotify playlist URL or ID to write into",
			},
			&cli.StringFlag{
				Name:    "spotify-playlist-name",
				Aliases: []string{"spname", "spotify-name"},
				Usage:   "Spotify playlist name (defaults to the YouTube playlist title)",
			},
			&cli.StringFlag{
				Name:    "youtube-oauth-json",
				Aliases: []string{"ytauth", "youtube-auth"},
				Usage:   "Path to YouTube Music auth file (browser.json or oauth.json)",
			},
			&cli.BoolFlag{
				Name:    "create-new",
				Aliases: []string{"n"},
				Usage:   "Always create a new playlist instead of reusing one by name",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"d"},
				Usage:   "Match tracks without modifying anything on Spotify",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Transfer only the first N tracks",
			},
		},
		Action: r.TransferRun,
	}
}

// spotifyCommand handles Spotify operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"sp"},
		Usage:   "Spotify operations",
		Commands: []*cli.Command{
			{
				Name:   "auth",
				Usage:  "Authenticate with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SpotifyAuth,
			},
			{
				Name:  "playlists",
				Usage: "List Spotify playlists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SpotifyPlaylists,
			},
		},
	}
}

// youtubeCommand handles YouTube Music operations
func youtubeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "youtube",
		Aliases: []string{"yt", "ytmusic"},
		Usage:   "YouTube Music operations",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List YouTube Music library playlists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "youtube-oauth-json",
						Aliases: []string{"ytauth", "youtube-auth"},
						Usage:   "Path to YouTube Music auth file",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.YouTubePlaylists,
			},
			{
				Name:      "export",
				Usage:     "Export playlists to CSV, Markdown, or plain text files",
				ArgsUsage: "[playlist-id ...]",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "youtube-oauth-json",
						Aliases: []string{"ytauth", "youtube-auth"},
						Usage:   "Path to YouTube Music auth file",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every playlist in the library",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: csv, md, or txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: youtube_export_<timestamp>)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent export workers",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Source API requests per second",
					},
				},
				Action: r.YouTubeExport,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and authentication.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the search-cache database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:    "youtube",
				Aliases: []string{"yt", "ytmusic"},
				Usage:   "Configure YouTube Music authentication from browser headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to file containing the cURL command",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output path for browser.json (default: ~/.ytm2spt/browser.json)",
					},
				},
				Action: r.SetupYouTube,
			},
		},
	}
}

// cacheCommand manages the local search cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local track search cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheStats,
			},
			{
				Name:   "purge",
				Usage:  "Delete all cached search results",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CachePurge,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive transfers.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist transfer",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "youtube-oauth-json",
				Aliases: []string{"ytauth", "youtube-auth"},
				Usage:   "Path to YouTube Music auth file",
			},
			&cli.BoolFlag{
				Name:    "create-new",
				Aliases: []string{"n"},
				Usage:   "Always create a new playlist instead of reusing one by name",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"d"},
				Usage:   "Match tracks without modifying anything on Spotify",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Transfer only the first N tracks",
			},
		},
		Action: r.TUI,
	}
}
