package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/abhishekmj303/ytm2spt/internal/shared"
	tu "github.com/abhishekmj303/ytm2spt/internal/testing"
	"github.com/urfave/cli/v3"
)

func testRunner() *Runner {
	return NewRunner(RunnerOpts{
		Source: &tu.MockSource{},
		Output: &bytes.Buffer{},
	})
}

func flagNames(flags []cli.Flag) []string {
	names := []string{}
	for _, f := range flags {
		names = append(names, f.Names()...)
	}
	return names
}

func TestTransferCommandFlags(t *testing.T) {
	cmd := transferCommand(testRunner())
	names := flagNames(cmd.Flags)

	// Long forms are the stable surface; short forms are aliases.
	for _, want := range []string{
		"youtube-url-or-id", "yt",
		"spotify-url-or-id", "sp",
		"spotify-playlist-name", "spname",
		"youtube-oauth-json", "ytauth",
		"create-new", "n",
		"dryrun", "d",
		"limit", "l",
	} {
		if !slices.Contains(names, want) {
			t.Errorf("transfer command is missing flag %q", want)
		}
	}
}

func TestTransferRunValidation(t *testing.T) {
	tt := []struct {
		name string
		args []string
	}{
		{
			name: "negative limit",
			args: []string{"transfer", "-yt", "PLabc123", "--limit=-1"},
		},
		{
			name: "destination id and name together",
			args: []string{"transfer", "-yt", "PLabc123", "-sp", "37i9dQ", "-spname", "My Mix"},
		},
		{
			name: "create new under dry run",
			args: []string{"transfer", "-yt", "PLabc123", "-n", "-d"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cmd := transferCommand(testRunner())
			err := cmd.Run(context.Background(), tc.args)
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestApplyConfig(t *testing.T) {
	t.Run("startup path is a no-op", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Source:     &tu.MockSource{},
			ConfigPath: "config.toml",
		})
		before := runner.config

		if err := runner.applyConfig("config.toml"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.config != before {
			t.Error("expected config to be untouched")
		}
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		runner := testRunner()
		before := runner.config

		if err := runner.applyConfig(""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.config != before {
			t.Error("expected config to be untouched")
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		runner := testRunner()
		if err := runner.applyConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected an error for a missing config file")
		}
	})

	t.Run("reload rebuilds services", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = "client-id"
		config.Credentials.Spotify.ClientSecret = "client-secret"

		path := filepath.Join(t.TempDir(), "other.toml")
		if err := shared.SaveConfig(path, config); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner := NewRunner(RunnerOpts{
			Source:     &tu.MockSource{},
			ConfigPath: "config.toml",
		})
		if runner.spotify != nil {
			t.Fatal("expected no spotify service before reload")
		}

		if err := runner.applyConfig(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if runner.configPath != path {
			t.Errorf("expected configPath %q, got %q", path, runner.configPath)
		}
		if runner.config.Credentials.Spotify.ClientID != "client-id" {
			t.Error("expected reloaded credentials")
		}
		if runner.spotify == nil {
			t.Error("expected spotify service to be rebuilt")
		}
		if runner.engine == nil {
			t.Error("expected engine to be rebuilt")
		}
	})
}
