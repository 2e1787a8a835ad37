package tasks

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

// maxCoverBytes is the destination service's cover upload ceiling.
const maxCoverBytes = 200 * 1024

// fetchCover picks the largest source thumbnail whose byte size fits the
// upload ceiling and returns it as base64-encoded image data.
//
// Thumbnails arrive ordered smallest to largest, so candidates are probed
// from the end with a HEAD request before downloading. Returns an error
// when no thumbnail exists or none fits the cap.
func fetchCover(ctx context.Context, client *http.Client, thumbnails []models.Thumbnail) (string, error) {
	if len(thumbnails) == 0 {
		return "", fmt.Errorf("no thumbnails available")
	}

	for i := len(thumbnails) - 1; i >= 0; i-- {
		thumb := thumbnails[i]

		size, err := probeSize(ctx, client, thumb.URL)
		if err != nil {
			return "", err
		}
		// Unknown content length counts as not fitting.
		if size < 0 || size >= maxCoverBytes {
			continue
		}

		return downloadCover(ctx, client, thumb.URL)
	}

	return "", fmt.Errorf("no thumbnail under %d bytes", maxCoverBytes)
}

func probeSize(ctx context.Context, client *http.Client, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create probe request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("thumbnail probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("thumbnail probe failed: status %d", resp.StatusCode)
	}

	return resp.ContentLength, nil
}

func downloadCover(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("thumbnail download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("thumbnail download failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
