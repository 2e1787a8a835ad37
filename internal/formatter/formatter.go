// package formatter renders playlist track listings to exportable formats
// (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

// Formats supported by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Export renders a playlist in the named format and returns the encoded
// bytes with the matching file extension.
func Export(format string, playlist models.Playlist, tracks []models.Track) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		data, err := ExportToCSV(playlist, tracks)
		return data, "csv", err
	case FormatMarkdown, "md":
		data, err := ExportToMarkdown(playlist, tracks)
		return data, "md", err
	case FormatText, "":
		data, err := ExportToText(playlist, tracks)
		return data, "txt", err
	default:
		return nil, "", fmt.Errorf("unsupported format: %s", format)
	}
}

// ExportToCSV converts a playlist to CSV with columns: Position, Artist, Title.
func ExportToCSV(playlist models.Playlist, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Artist", "Title"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range tracks {
		record := []string{strconv.Itoa(i + 1), track.Artist, track.Title}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to a Markdown track listing.
func ExportToMarkdown(playlist models.Playlist, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))

	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to a plain text track listing.
func ExportToText(playlist models.Playlist, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s (%d tracks)\n\n", playlist.Name, len(tracks)))
	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}
