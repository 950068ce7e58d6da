package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// DefaultMaxExtractions is the number of rows kept before the least
// recently used ones are pruned.
const DefaultMaxExtractions = 500

var _ driven.ExtractionCache = (*ExtractionCache)(nil)

// ExtractionCache stores extraction results in the extractions table.
// Database errors are logged and reported as a miss.
type ExtractionCache struct {
	store      *Store
	maxEntries int
}

// Get returns the cached result for key and marks it as recently used.
func (c *ExtractionCache) Get(key string) (*driven.ExtractResult, bool) {
	var result driven.ExtractResult
	err := c.store.db.QueryRow(
		"SELECT text, pages FROM extractions WHERE cache_key = ?", key,
	).Scan(&result.Text, &result.Pages)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		logger.Warn("extraction cache read failed: %v", err)
		return nil, false
	}

	if _, err := c.store.db.Exec(
		"UPDATE extractions SET accessed_at = ? WHERE cache_key = ?", time.Now().UTC(), key,
	); err != nil {
		logger.Debug("extraction cache touch failed: %v", err)
	}
	return &result, true
}

// Put stores result under key and prunes the oldest rows beyond the limit.
func (c *ExtractionCache) Put(key string, result *driven.ExtractResult) {
	if result == nil {
		return
	}
	now := time.Now().UTC()
	_, err := c.store.db.Exec(`
		INSERT INTO extractions (cache_key, text, pages, created_at, accessed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			text = excluded.text,
			pages = excluded.pages,
			accessed_at = excluded.accessed_at
	`, key, result.Text, result.Pages, now, now)
	if err != nil {
		logger.Warn("extraction cache write failed: %v", err)
		return
	}

	_, err = c.store.db.Exec(`
		DELETE FROM extractions WHERE cache_key NOT IN (
			SELECT cache_key FROM extractions ORDER BY accessed_at DESC LIMIT ?
		)
	`, c.maxEntries)
	if err != nil {
		logger.Debug("extraction cache prune failed: %v", err)
	}
}

// Len returns the number of stored results.
func (c *ExtractionCache) Len() int {
	var n int
	if err := c.store.db.QueryRow("SELECT COUNT(*) FROM extractions").Scan(&n); err != nil {
		logger.Warn("extraction cache count failed: %v", err)
		return 0
	}
	return n
}
