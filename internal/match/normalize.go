// package match normalizes track metadata and scores search candidates.
package match

import (
	"strings"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

// CleanTrack strips featured-artist annotations and version decorations from
// a track's title and artist so search queries stay concise.
//
// The title is truncated at the first "(", the first "ft" and the first ",".
// The artist is additionally truncated at the first " x " separator before
// the same three markers apply. Truncation is ordered and case sensitive, so
// "Drake ft. Future" becomes "Drake" but "FT Island" survives. The function
// is pure and idempotent.
func CleanTrack(track models.Track) models.Track {
	return models.Track{
		Title:  cleanField(track.Title),
		Artist: cleanField(truncateAt(track.Artist, " x ")),
	}
}

func cleanField(s string) string {
	s = truncateAt(s, "(")
	s = truncateAt(s, "ft")
	s = truncateAt(s, ",")
	return strings.TrimSpace(s)
}

func truncateAt(s, marker string) string {
	if idx := strings.Index(s, marker); idx >= 0 {
		return s[:idx]
	}
	return s
}
