package memory

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure ExtractionCache implements the interface.
var _ driven.ExtractionCache = (*ExtractionCache)(nil)

// DefaultExtractionCacheSize is the number of extraction results kept.
const DefaultExtractionCacheSize = 64

// ExtractionCache keeps recent extraction results so re-uploading the same
// file (notably audio, which costs a transcription) does not extract twice.
type ExtractionCache struct {
	entries *lru.Cache[string, driven.ExtractResult]
	backing driven.ExtractionCache
}

// NewExtractionCache creates a cache holding at most size results.
func NewExtractionCache(size int) (*ExtractionCache, error) {
	if size <= 0 {
		size = DefaultExtractionCacheSize
	}
	cache, err := lru.New[string, driven.ExtractResult](size)
	if err != nil {
		return nil, fmt.Errorf("create extraction cache: %w", err)
	}
	return &ExtractionCache{entries: cache}, nil
}

// WithBacking puts the cache in front of a slower cache, such as one on disk.
// Misses fall through to backing and writes go to both.
func (c *ExtractionCache) WithBacking(backing driven.ExtractionCache) *ExtractionCache {
	c.backing = backing
	return c
}

// Get returns a copy of a cached result.
func (c *ExtractionCache) Get(key string) (*driven.ExtractResult, bool) {
	if r, ok := c.entries.Get(key); ok {
		return &r, true
	}
	if c.backing == nil {
		return nil, false
	}
	r, ok := c.backing.Get(key)
	if !ok || r == nil {
		return nil, false
	}
	c.entries.Add(key, *r)
	out := *r
	return &out, true
}

// Put stores a copy of result.
func (c *ExtractionCache) Put(key string, result *driven.ExtractResult) {
	if result == nil {
		return
	}
	c.entries.Add(key, *result)
	if c.backing != nil {
		c.backing.Put(key, result)
	}
}

// Len returns the number of cached results.
func (c *ExtractionCache) Len() int {
	return c.entries.Len()
}
