package formatter

import (
	"strings"
	"testing"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

var testPlaylist = models.Playlist{
	Name:        "Road Trip",
	Description: "Summer drive",
	TrackCount:  2,
}

var testTracks = []models.Track{
	{Artist: "Daft Punk", Title: "One More Time"},
	{Artist: "Justice", Title: "D.A.N.C.E."},
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(testPlaylist, testTracks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if lines[0] != "Position,Artist,Title" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "1,Daft Punk,One More Time" {
		t.Errorf("unexpected first record: %s", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(testPlaylist, testTracks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "# Road Trip") {
		t.Error("expected playlist heading")
	}
	if !strings.Contains(out, "**Description**: Summer drive") {
		t.Error("expected description line")
	}
	if !strings.Contains(out, "2. Justice - D.A.N.C.E.") {
		t.Error("expected numbered track line")
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(testPlaylist, testTracks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(data)
	if !strings.HasPrefix(out, "Road Trip (2 tracks)") {
		t.Errorf("unexpected header: %s", out)
	}
	if !strings.Contains(out, "1. Daft Punk - One More Time") {
		t.Error("expected numbered track line")
	}
}

func TestExport(t *testing.T) {
	tt := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{format: "csv", wantExt: "csv"},
		{format: "markdown", wantExt: "md"},
		{format: "txt", wantExt: "txt"},
		{format: "", wantExt: "txt"},
		{format: "xml", wantErr: true},
	}

	for _, tc := range tt {
		t.Run("format "+tc.format, func(t *testing.T) {
			data, ext, err := Export(tc.format, testPlaylist, testTracks)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ext != tc.wantExt {
				t.Errorf("expected extension %s, got %s", tc.wantExt, ext)
			}
			if len(data) == 0 {
				t.Error("expected rendered output")
			}
		})
	}
}
