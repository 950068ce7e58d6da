package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

func TestExtractionCache_PutGet(t *testing.T) {
	cache, err := NewExtractionCache(0)
	require.NoError(t, err)

	cache.Put("k", &driven.ExtractResult{Text: "hello", Pages: 2})

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, 2, got.Pages)

	_, ok = cache.Get("other")
	assert.False(t, ok)
}

func TestExtractionCache_ReturnsCopies(t *testing.T) {
	cache, err := NewExtractionCache(4)
	require.NoError(t, err)
	original := &driven.ExtractResult{Text: "hello"}
	cache.Put("k", original)

	original.Text = "mutated"
	got, _ := cache.Get("k")
	got.Text = "changed"

	again, _ := cache.Get("k")
	assert.Equal(t, "hello", again.Text)
}

func TestExtractionCache_IgnoresNil(t *testing.T) {
	cache, err := NewExtractionCache(4)
	require.NoError(t, err)

	cache.Put("k", nil)

	assert.Equal(t, 0, cache.Len())
}

func TestExtractionCache_Evicts(t *testing.T) {
	cache, err := NewExtractionCache(2)
	require.NoError(t, err)

	cache.Put("a", &driven.ExtractResult{Text: "a"})
	cache.Put("b", &driven.ExtractResult{Text: "b"})
	cache.Put("c", &driven.ExtractResult{Text: "c"})

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok)
}

type countingCache struct {
	data map[string]driven.ExtractResult
	gets int
	puts int
}

func (c *countingCache) Get(key string) (*driven.ExtractResult, bool) {
	c.gets++
	r, ok := c.data[key]
	if !ok {
		return nil, false
	}
	return &r, true
}

func (c *countingCache) Put(key string, result *driven.ExtractResult) {
	c.puts++
	c.data[key] = *result
}

func TestExtractionCache_WithBacking(t *testing.T) {
	backing := &countingCache{data: map[string]driven.ExtractResult{
		"disk": {Text: "from disk", Pages: 4},
	}}
	cache, err := NewExtractionCache(4)
	require.NoError(t, err)
	cache.WithBacking(backing)

	got, ok := cache.Get("disk")
	require.True(t, ok)
	assert.Equal(t, "from disk", got.Text)
	assert.Equal(t, 1, backing.gets)

	// Promoted into memory, so the backing cache is not asked again.
	_, ok = cache.Get("disk")
	assert.True(t, ok)
	assert.Equal(t, 1, backing.gets)

	cache.Put("new", &driven.ExtractResult{Text: "fresh"})
	assert.Equal(t, 1, backing.puts)
	assert.Equal(t, "fresh", backing.data["new"].Text)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}
