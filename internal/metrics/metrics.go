package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "widget_catalog"

// Reload status label values
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

// Metrics holds the Prometheus collectors of the catalog service.
// All recording methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Search metrics
	SearchesTotal  *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	SearchResults  *prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Catalog metrics
	CatalogReloadsTotal *prometheus.CounterVec
	CatalogComponents   prometheus.Gauge
}

// New creates a Metrics instance registered on its own registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates and registers all metrics on the given registry.
func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of catalog queries",
			},
			[]string{"tool", "mode"},
		),
		SearchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Catalog query duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"tool"},
		),
		SearchResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_results",
				Help:      "Number of results returned per query",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
			[]string{"tool"},
		),

		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of search result cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of search result cache misses",
			},
		),

		CatalogReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reloads_total",
				Help:      "Total number of catalog reloads",
			},
			[]string{"status"},
		),
		CatalogComponents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_components",
				Help:      "Number of components in the active catalog",
			},
		),
	}

	registry.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		m.SearchResults,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CatalogReloadsTotal,
		m.CatalogComponents,
	)

	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler exposing the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSearch records one query of a tool.
func (m *Metrics) ObserveSearch(tool, mode string, started time.Time, results int) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(tool, mode).Inc()
	m.SearchDuration.WithLabelValues(tool).Observe(time.Since(started).Seconds())
	m.SearchResults.WithLabelValues(tool).Observe(float64(results))
}

// CacheHit records a result cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// CacheMiss records a result cache miss.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

// CatalogLoaded records a catalog (re)load outcome and, on success, the new size.
func (m *Metrics) CatalogLoaded(err error, components int) {
	if m == nil {
		return
	}
	if err != nil {
		m.CatalogReloadsTotal.WithLabelValues(ReloadFailure).Inc()
		return
	}
	m.CatalogReloadsTotal.WithLabelValues(ReloadSuccess).Inc()
	m.CatalogComponents.Set(float64(components))
}
