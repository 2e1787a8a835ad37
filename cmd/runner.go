package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/abhishekmj303/ytm2spt/internal/repositories"
	"github.com/abhishekmj303/ytm2spt/internal/services"
	"github.com/abhishekmj303/ytm2spt/internal/shared"
	"github.com/abhishekmj303/ytm2spt/internal/tasks"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	source     services.SourceService
	spotify    *services.SpotifyService
	cache      *repositories.SearchCacheRepository
	engine     *tasks.TransferEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Source     services.SourceService
	Spotify    *services.SpotifyService
	Cache      *repositories.SearchCacheRepository
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		source:     opts.Source,
		spotify:    opts.Spotify,
		cache:      opts.Cache,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.rebuildEngine()

	return r
}

// rebuildEngine wires the transfer engine from the runner's current
// services. A nil *SpotifyService must not become a non-nil interface
// value.
func (r *Runner) rebuildEngine() {
	var mutator *tasks.DestinationMutator
	if r.spotify != nil {
		var cacher tasks.SearchCacher
		if r.cache != nil {
			cacher = r.cache
		}
		mutator = tasks.NewDestinationMutator(r.spotify, cacher, r.logger)
	}

	r.engine = tasks.NewTransferEngine(r.source, mutator, r.logger)
}

// applyConfig reloads configuration from path and rebuilds every service
// derived from it. The path loaded at startup is a no-op, so command
// actions call this unconditionally with their --config value.
func (r *Runner) applyConfig(path string) error {
	if path == "" || path == r.configPath {
		return nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	r.config = config
	r.configPath = path

	r.httpClient = &http.Client{Timeout: config.HTTP.Timeout()}
	r.source = services.NewYouTubeService(config.Credentials.YouTube.ProxyURL, config.HTTP.Timeout())

	r.spotify = nil
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		svc, svcErr := services.NewSpotifyService(
			config.Credentials.Spotify.Map(), config.HTTP.Timeout(), config.HTTP.SpotifyRateLimit)
		if svcErr != nil {
			return fmt.Errorf("failed to configure spotify service: %w", svcErr)
		}
		r.spotify = svc
	}

	r.cache = nil
	if config.Database.Path != "" {
		if _, statErr := os.Stat(config.Database.Path); statErr == nil {
			if db, dbErr := shared.NewDatabase(config.Database.Path); dbErr == nil {
				shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
				r.cache = repositories.NewSearchCacheRepository(db)
			} else {
				r.logger.Warn("search cache unavailable", "error", dbErr)
			}
		}
	}

	r.rebuildEngine()
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, spotifyCommand, youtubeCommand, transferCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, e.g. to redirect logs to a file
// while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// saveTokens persists a freshly issued token into the config, writing the
// file back when a config path is known.
func (r *Runner) saveTokens(token *oauth2.Token) error {
	if r.config == nil {
		return fmt.Errorf("config is nil")
	}

	if err := r.config.Credentials.Spotify.Update(token); err != nil {
		return fmt.Errorf("failed to update spotify configuration: %w", err)
	}

	if r.configPath == "" {
		return nil
	}

	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
