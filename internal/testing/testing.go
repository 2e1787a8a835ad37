// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

// MockSource is a test double for [services.SourceService]
type MockSource struct {
	PlaylistList []models.Playlist
}

func (m *MockSource) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockSource) PlaylistMeta(ctx context.Context, playlistID string) (*models.PlaylistMeta, error) {
	return &models.PlaylistMeta{ID: playlistID}, nil
}

func (m *MockSource) PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	return []models.Track{}, nil
}

func (m *MockSource) Playlists(ctx context.Context) ([]models.Playlist, error) {
	return m.PlaylistList, nil
}

func (m *MockSource) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
