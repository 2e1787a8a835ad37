// package models defines the data model for the playlist transfer pipeline
package models

import "fmt"

// ServiceTag identifies which side of a transfer a playlist reference belongs to.
type ServiceTag int

const (
	// Source is the service being read from (YouTube Music).
	Source ServiceTag = iota
	// Destination is the service being written to (Spotify).
	Destination
)

func (s ServiceTag) String() string {
	switch s {
	case Source:
		return "source"
	case Destination:
		return "destination"
	default:
		return ""
	}
}

// PlaylistRef pairs a service tag with a resolved native playlist identifier.
//
// A ref is created once per transfer run per service and is immutable afterwards.
type PlaylistRef struct {
	Service ServiceTag
	ID      string
}

// Track is an immutable artist/title pair fetched from the source playlist.
type Track struct {
	Artist string
	Title  string
}

func (t Track) String() string {
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}

// Playlist is a playlist summary as listed by either service.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
}

// Thumbnail is a cover image variant advertised by the source service.
type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// PlaylistMeta is source playlist metadata used for destination naming and
// cover copy. Thumbnails are ordered smallest to largest, as the source
// service reports them.
type PlaylistMeta struct {
	ID         string
	Title      string
	Thumbnails []Thumbnail
	TrackCount int
}

// Candidate is a single destination-catalog search hit.
type Candidate struct {
	URI    string // service-native track reference, e.g. spotify:track:...
	Title  string
	Artist string // primary artist only
	Album  string
}

// SearchResult is the ordered candidate list returned for one catalog query,
// ranked by the destination service's own relevance ordering.
type SearchResult struct {
	Query      string
	Candidates []Candidate
}

// Empty reports whether the search returned no candidates.
func (r *SearchResult) Empty() bool {
	return r == nil || len(r.Candidates) == 0
}

// UnmatchedTrack records a source track that produced no destination match.
type UnmatchedTrack struct {
	Position int // 1-indexed position in the source playlist
	Artist   string
	Title    string
}

func (u UnmatchedTrack) String() string {
	return fmt.Sprintf("%d. %s - %s", u.Position, u.Artist, u.Title)
}

// TransferOutcome accumulates counts over a transfer run and is handed to the
// caller once the run finalizes. It is never persisted.
type TransferOutcome struct {
	SourceTitle     string
	DestinationID   string
	DestinationName string
	DryRun          bool
	Total           int // source tracks processed (after limit truncation)
	Found           int
	Added           int
	Unmatched       []UnmatchedTrack
}

// NotFound is the number of source tracks with no destination match.
func (o *TransferOutcome) NotFound() int {
	return len(o.Unmatched)
}

// Summary renders the one-line human readable result.
func (o *TransferOutcome) Summary() string {
	if o.DryRun {
		return fmt.Sprintf("Found %d songs out of %d", o.Found, o.Total)
	}
	return fmt.Sprintf("Added %d songs out of %d", o.Added, o.Total)
}
