package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()
	require.NotNil(t, m)
	require.NotNil(t, m.Registry())

	assert.NotNil(t, m.SearchesTotal)
	assert.NotNil(t, m.SearchDuration)
	assert.NotNil(t, m.SearchResults)
	assert.NotNil(t, m.CacheHitsTotal)
	assert.NotNil(t, m.CacheMissesTotal)
	assert.NotNil(t, m.CatalogReloadsTotal)
	assert.NotNil(t, m.CatalogComponents)
}

func TestNewWithRegistry_SeparateRegistries(t *testing.T) {
	// Each instance owns its collectors, so two can coexist without a duplicate registration panic.
	assert.NotPanics(t, func() {
		_ = NewWithRegistry(prometheus.NewRegistry())
		_ = NewWithRegistry(prometheus.NewRegistry())
	})
}

func TestObserveSearch(t *testing.T) {
	m := New()

	m.ObserveSearch("search_components", "partial", time.Now(), 3)
	m.ObserveSearch("search_components", "partial", time.Now(), 0)
	m.ObserveSearch("search_components", "exact", time.Now(), 1)

	expected := `
		# HELP widget_catalog_searches_total Total number of catalog queries
		# TYPE widget_catalog_searches_total counter
		widget_catalog_searches_total{mode="exact",tool="search_components"} 1
		widget_catalog_searches_total{mode="partial",tool="search_components"} 2
	`
	err := testutil.CollectAndCompare(m.SearchesTotal, strings.NewReader(expected))
	assert.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.SearchDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SearchResults))
}

func TestCacheCounters(t *testing.T) {
	m := New()

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMissesTotal))
}

func TestCatalogLoaded(t *testing.T) {
	m := New()

	m.CatalogLoaded(nil, 20)
	m.CatalogLoaded(errors.New("boom"), 0)

	assert.Equal(t, float64(20), testutil.ToFloat64(m.CatalogComponents))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CatalogReloadsTotal.WithLabelValues(ReloadSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CatalogReloadsTotal.WithLabelValues(ReloadFailure)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSearch("search_components", "exact", time.Now(), 1)
		m.CacheHit()
		m.CacheMiss()
		m.CatalogLoaded(nil, 5)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler(t *testing.T) {
	m := New()
	m.CatalogLoaded(nil, 7)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "widget_catalog_catalog_components 7")
}
