// Package models defines the domain types shared by the transfer pipeline.
//
// The package contains only value types passed between components:
//
//   - [Track] : artist/title pair from the source playlist
//   - [PlaylistRef] : service tag plus resolved native playlist identifier
//   - [PlaylistMeta] : source playlist title and thumbnail variants
//   - [SearchResult] / [Candidate] : destination catalog search hits
//   - [TransferOutcome] : per-run accounting handed to the caller at run end
//
// Nothing here performs I/O. Source ordering is preserved wherever tracks are
// carried as slices, because processing order and reporting positions mirror
// the source playlist.
package models
