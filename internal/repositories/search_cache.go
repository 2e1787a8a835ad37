// package repositories provides the persistence layer for the search-result
// cache.
//
// The cache memoizes destination catalog lookups keyed by search query, so
// re-running a transfer skips the API round trip for tracks already
// resolved. Cache failures are never fatal to a transfer run.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

// SearchCacheRepository stores resolved search queries in SQLite.
type SearchCacheRepository struct {
	db *sql.DB
}

// NewSearchCacheRepository creates a repository backed by the given database.
func NewSearchCacheRepository(db *sql.DB) *SearchCacheRepository {
	return &SearchCacheRepository{db: db}
}

// Get returns the cached candidate for a query, or ok=false on a miss.
func (r *SearchCacheRepository) Get(query string) (models.Candidate, bool, error) {
	var candidate models.Candidate

	row := r.db.QueryRow(
		"SELECT track_uri, artist, title FROM search_cache WHERE query = ?", query)
	if err := row.Scan(&candidate.URI, &candidate.Artist, &candidate.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Candidate{}, false, nil
		}
		return models.Candidate{}, false, fmt.Errorf("failed to read search cache: %w", err)
	}

	return candidate, true, nil
}

// Put stores or replaces the resolved candidate for a query.
func (r *SearchCacheRepository) Put(query string, candidate models.Candidate) error {
	_, err := r.db.Exec(`
		INSERT INTO search_cache (query, track_uri, artist, title)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(query) DO UPDATE SET
			track_uri = excluded.track_uri,
			artist = excluded.artist,
			title = excluded.title,
			cached_at = CURRENT_TIMESTAMP
	`, query, candidate.URI, candidate.Artist, candidate.Title)
	if err != nil {
		return fmt.Errorf("failed to write search cache: %w", err)
	}

	return nil
}

// Purge deletes all cached entries and returns how many were removed.
func (r *SearchCacheRepository) Purge() (int64, error) {
	result, err := r.db.Exec("DELETE FROM search_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to purge search cache: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}

	return removed, nil
}

// Count returns the number of cached entries.
func (r *SearchCacheRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM search_cache").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count search cache: %w", err)
	}
	return count, nil
}
