package components

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/sha1n/mcp-widget-catalog/internal/metrics"
	"github.com/sha1n/mcp-widget-catalog/internal/search"
)

// ResultCache is a size and age bounded cache of search results.
// A nil *ResultCache is a valid, always-missing cache.
type ResultCache struct {
	lru     *expirable.LRU[string, []domain.SearchResult]
	metrics *metrics.Metrics
}

// NewResultCache creates a cache holding up to size entries for at most ttl.
func NewResultCache(size int, ttl time.Duration, m *metrics.Metrics) *ResultCache {
	return &ResultCache{
		lru:     expirable.NewLRU[string, []domain.SearchResult](size, nil, ttl),
		metrics: m,
	}
}

// cacheKey normalises a request so equivalent requests share an entry.
// Tag order and duplicates do not matter to the engine, so they do not matter here.
// The catalog generation keeps results computed against a replaced catalog unreachable.
func cacheKey(tool string, generation uint64, req search.Request) string {
	tags := slices.Clone(req.Tags)
	slices.Sort(tags)
	tags = slices.Compact(tags)

	return strings.Join([]string{
		tool,
		strconv.FormatUint(generation, 10),
		req.Mode.String(),
		strconv.Itoa(req.Limit),
		req.Category,
		strings.Join(tags, ","),
		strings.TrimSpace(req.Query),
	}, "\x1f")
}

// Get returns a copy of the cached results for key.
func (c *ResultCache) Get(key string) ([]domain.SearchResult, bool) {
	if c == nil {
		return nil, false
	}

	results, ok := c.lru.Get(key)
	if !ok {
		c.metrics.CacheMiss()
		return nil, false
	}
	c.metrics.CacheHit()
	return cloneResults(results), true
}

// Add stores a copy of results under key.
func (c *ResultCache) Add(key string, results []domain.SearchResult) {
	if c == nil {
		return
	}
	c.lru.Add(key, cloneResults(results))
}

// Purge drops every entry. Called whenever the catalog changes.
func (c *ResultCache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

func cloneResults(results []domain.SearchResult) []domain.SearchResult {
	out := make([]domain.SearchResult, len(results))
	for i, r := range results {
		out[i] = r
		out[i].MatchedFields = slices.Clone(r.MatchedFields)
		out[i].Highlights = maps.Clone(r.Highlights)
	}
	return out
}
