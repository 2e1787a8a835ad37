package services

import (
	"fmt"
	"strings"

	"github.com/abhishekmj303/ytm2spt/internal/models"
	"github.com/abhishekmj303/ytm2spt/internal/shared"
)

var (
	youtubeHostMarkers = []string{"youtube.com", "youtu.be"}
	spotifyMarkers     = []string{"spotify.com", "spotify:"}
)

// Resolve extracts a service-native playlist ID from a raw URL, URI, or
// bare ID string.
func Resolve(raw string, service models.ServiceTag) (string, error) {
	switch service {
	case models.Source:
		return resolveYouTube(raw)
	case models.Destination:
		return resolveSpotify(raw)
	}
	return "", fmt.Errorf("%w: unknown service %q", shared.ErrInvalidArgument, service)
}

// resolveYouTube extracts the "list" query parameter from a YouTube URL.
// Inputs without a YouTube host marker pass through as bare IDs; a URL
// with a marker but no list parameter is the one malformed case.
func resolveYouTube(raw string) (string, error) {
	hasMarker := false
	for _, marker := range youtubeHostMarkers {
		if strings.Contains(raw, marker) {
			hasMarker = true
			break
		}
	}
	if !hasMarker {
		return raw, nil
	}

	// Shell-escaped URLs arrive with "list\=".
	for _, key := range []string{`list\=`, "list="} {
		if _, after, ok := strings.Cut(raw, key); ok {
			id, _, _ := strings.Cut(after, "&")
			if id != "" {
				return id, nil
			}
		}
	}

	return "", fmt.Errorf("%w: no playlist parameter in %q", shared.ErrInvalidIdentifier, raw)
}

// resolveSpotify extracts the ID from an open.spotify.com playlist URL or a
// spotify:playlist: URI. A Spotify marker without a playlist pattern is
// malformed; only inputs with no marker pass through as bare IDs.
func resolveSpotify(raw string) (string, error) {
	if _, after, ok := strings.Cut(raw, "playlist/"); ok {
		id, _, _ := strings.Cut(after, "?")
		if id == "" {
			return "", fmt.Errorf("%w: empty playlist segment in %q", shared.ErrInvalidIdentifier, raw)
		}
		return id, nil
	}

	if after, ok := strings.CutPrefix(raw, "spotify:playlist:"); ok {
		if after == "" {
			return "", fmt.Errorf("%w: empty playlist URI %q", shared.ErrInvalidIdentifier, raw)
		}
		return after, nil
	}

	// An album or track reference is not a usable playlist ID.
	for _, marker := range spotifyMarkers {
		if strings.Contains(raw, marker) {
			return "", fmt.Errorf("%w: no playlist reference in %q", shared.ErrInvalidIdentifier, raw)
		}
	}

	return raw, nil
}
