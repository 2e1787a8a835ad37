package tasks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportPlaylists(t *testing.T) {
	t.Run("Exports To Files", func(t *testing.T) {
		source := defaultSource()
		engine := testEngine(source, defaultDestination(), nil)
		outputDir := t.TempDir()

		result, err := engine.ExportPlaylists(context.Background(), nil, []string{"PLsrc"}, ExportOptions{
			Format:    "csv",
			OutputDir: outputDir,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Succeeded != 1 || result.Failed != 0 {
			t.Fatalf("expected one success, got %+v", result)
		}

		path := filepath.Join(outputDir, "Workout Mix.csv")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected export file: %v", err)
		}
		if !strings.Contains(string(data), "Daft Punk,One More Time") {
			t.Errorf("unexpected export contents: %s", string(data))
		}
	})

	t.Run("Partial Failures Recorded", func(t *testing.T) {
		source := defaultSource()
		engine := testEngine(source, defaultDestination(), nil)

		result, err := engine.ExportPlaylists(context.Background(), nil, []string{"PLsrc", "PLmissing"}, ExportOptions{
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Succeeded != 1 || result.Failed != 1 {
			t.Errorf("expected one success and one failure, got %+v", result)
		}
	})

	t.Run("Unsupported Format Fails Per Playlist", func(t *testing.T) {
		source := defaultSource()
		engine := testEngine(source, defaultDestination(), nil)

		result, err := engine.ExportPlaylists(context.Background(), nil, []string{"PLsrc"}, ExportOptions{
			Format:    "xml",
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Failed != 1 {
			t.Errorf("expected format failure recorded, got %+v", result)
		}
	})
}

func TestSanitizeFilename(t *testing.T) {
	tt := []struct {
		in   string
		want string
	}{
		{in: "Workout Mix", want: "Workout Mix"},
		{in: "a/b\\c:d", want: "a_b_c_d"},
		{in: "  ", want: "playlist"},
		{in: "What? <Now>", want: "What_ _Now_"},
	}

	for _, tc := range tt {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
