package components

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/sha1n/mcp-widget-catalog/internal/metrics"
	"github.com/sha1n/mcp-widget-catalog/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			ComponentID:   "text_input",
			Name:          "st.text_input",
			Category:      "input_widgets",
			Score:         4,
			MatchedFields: []string{domain.FieldID, domain.FieldName},
			Highlights:    map[string]string{domain.FieldName: "st.**text**_input"},
		},
	}
}

func TestResultCache_NilIsAlwaysMissing(t *testing.T) {
	var c *ResultCache

	c.Add("key", sampleResults())
	_, ok := c.Get("key")

	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	c.Purge()
}

func TestResultCache_GetReturnsCopy(t *testing.T) {
	c := NewResultCache(10, time.Hour, nil)
	c.Add("key", sampleResults())

	first, ok := c.Get("key")
	require.True(t, ok)
	first[0].Name = "changed"
	first[0].MatchedFields[0] = "changed"
	first[0].Highlights[domain.FieldName] = "changed"

	second, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, sampleResults(), second)
}

func TestResultCache_AddStoresCopy(t *testing.T) {
	c := NewResultCache(10, time.Hour, nil)
	results := sampleResults()
	c.Add("key", results)

	results[0].Highlights[domain.FieldName] = "changed"

	cached, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "st.**text**_input", cached[0].Highlights[domain.FieldName])
}

func TestResultCache_EvictsBySize(t *testing.T) {
	c := NewResultCache(2, time.Hour, nil)
	c.Add("a", nil)
	c.Add("b", nil)
	c.Add("c", nil)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestResultCache_Expires(t *testing.T) {
	c := NewResultCache(10, 50*time.Millisecond, nil)
	c.Add("key", sampleResults())

	assert.Eventually(t, func() bool {
		_, ok := c.Get("key")
		return !ok
	}, 2*time.Second, 20*time.Millisecond)
}

func TestResultCache_Purge(t *testing.T) {
	c := NewResultCache(10, time.Hour, nil)
	c.Add("a", sampleResults())
	c.Add("b", sampleResults())

	c.Purge()

	assert.Equal(t, 0, c.Len())
}

func TestResultCache_RecordsHitsAndMisses(t *testing.T) {
	m := metrics.New()
	c := NewResultCache(10, time.Hour, m)

	_, _ = c.Get("key")
	c.Add("key", sampleResults())
	_, _ = c.Get("key")
	_, _ = c.Get("key")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMissesTotal))
}

func TestCacheKey(t *testing.T) {
	base := search.NewRequest("text", search.WithTags("form", "input"))

	t.Run("tag order and duplicates are ignored", func(t *testing.T) {
		other := search.NewRequest("text", search.WithTags("input", "form", "input"))
		assert.Equal(t, cacheKey(OpSearch, 1, base), cacheKey(OpSearch, 1, other))
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		other := search.NewRequest("  text ", search.WithTags("form", "input"))
		assert.Equal(t, cacheKey(OpSearch, 1, base), cacheKey(OpSearch, 1, other))
	})

	t.Run("generation is part of the key", func(t *testing.T) {
		assert.NotEqual(t, cacheKey(OpSearch, 1, base), cacheKey(OpSearch, 2, base))
	})

	t.Run("tool is part of the key", func(t *testing.T) {
		assert.NotEqual(t, cacheKey(OpSearch, 1, base), cacheKey(OpFullText, 1, base))
	})

	t.Run("request options are part of the key", func(t *testing.T) {
		variants := []search.Request{
			search.NewRequest("text", search.WithTags("form", "input"), search.WithMode(search.ModeExact)),
			search.NewRequest("text", search.WithTags("form", "input"), search.WithLimit(3)),
			search.NewRequest("text", search.WithTags("form", "input"), search.WithCategory("input_widgets")),
			search.NewRequest("text", search.WithTags("form")),
			search.NewRequest("texts", search.WithTags("form", "input")),
		}
		for _, v := range variants {
			assert.NotEqual(t, cacheKey(OpSearch, 1, base), cacheKey(OpSearch, 1, v))
		}
	})

	t.Run("does not modify request tags", func(t *testing.T) {
		req := search.NewRequest("text", search.WithTags("b", "a"))
		_ = cacheKey(OpSearch, 1, req)
		assert.Equal(t, []string{"b", "a"}, req.Tags)
	})
}
