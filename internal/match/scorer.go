package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/log"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

// matchThreshold is the minimum token-sort ratio for an artist name to count
// as a match.
const matchThreshold = 70

// topCandidates caps how many of the best-scoring names are considered.
const topCandidates = 3

// ArtistNames collects the distinct primary artist names from a search
// result, preserving candidate order.
func ArtistNames(result models.SearchResult) []string {
	seen := make(map[string]struct{}, len(result.Candidates))
	var names []string

	for _, candidate := range result.Candidates {
		if candidate.Artist == "" {
			continue
		}
		if _, ok := seen[candidate.Artist]; ok {
			continue
		}
		seen[candidate.Artist] = struct{}{}
		names = append(names, candidate.Artist)
	}

	return names
}

// FuzzyMatchArtist reports whether any of the top scoring artist names is a
// close enough match for the wanted artist. An empty name list is a
// rejection, logged at debug level along with the scores considered.
func FuzzyMatchArtist(logger *log.Logger, names []string, artist string) bool {
	if len(names) == 0 {
		logger.Debug("no artist names to match against", "artist", artist)
		return false
	}

	type scored struct {
		name  string
		score int
	}

	ranked := make([]scored, 0, len(names))
	for _, name := range names {
		ranked = append(ranked, scored{name: name, score: TokenSortRatio(name, artist)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > topCandidates {
		ranked = ranked[:topCandidates]
	}

	for _, candidate := range ranked {
		logger.Debug("artist candidate", "wanted", artist, "candidate", candidate.name, "score", candidate.score)
		if candidate.score > matchThreshold {
			return true
		}
	}

	return false
}

// TokenSortRatio computes a 0-100 similarity between two strings after
// lowercasing and sorting their whitespace-separated tokens, so word order
// doesn't affect the score.
func TokenSortRatio(a, b string) int {
	return ratio(tokenSort(a), tokenSort(b))
}

func tokenSort(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ratio converts levenshtein distance to a 0-100 similarity score.
func ratio(a, b string) int {
	if a == b {
		return 100
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	return (longest - dist) * 100 / longest
}
