package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sha1n/mcp-widget-catalog/internal/config"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/sha1n/mcp-widget-catalog/internal/metrics"
	"github.com/sha1n/mcp-widget-catalog/internal/search"
	"golang.org/x/sync/errgroup"
)

// Operation names used for metrics and cache keys
const (
	OpSearch   = "search"
	OpFullText = "fulltext"
	OpSuggest  = "suggest"
	OpRelated  = "related"
)

var (
	// ErrNotReady is returned by queries before a catalog has been loaded.
	ErrNotReady = errors.New("catalog is not loaded")

	// ErrFullTextDisabled is returned by FullTextSearch when the full-text index is turned off.
	ErrFullTextDisabled = errors.New("full-text search is disabled")

	// ErrComponentNotFound is returned for an unknown component ID.
	ErrComponentNotFound = errors.New("component not found")
)

// snapshot is one immutable build of the catalog. Reloads replace it whole.
type snapshot struct {
	engine     *search.Engine
	fullText   *FullTextIndex // nil when full-text search is disabled
	source     string
	generation uint64
	loadedAt   time.Time
}

// CategorySummary describes one category present in the catalog.
type CategorySummary struct {
	domain.CategoryInfo
	Count int  `json:"count"`
	Known bool `json:"known"`
}

// Status is a point-in-time description of the loaded catalog.
type Status struct {
	Ready      bool
	Source     string
	Components int
	Generation uint64
	LoadedAt   time.Time
	FullText   bool
}

// Service coordinates catalog loading, the search engines, the result cache and the file watcher.
type Service struct {
	settings  *config.CatalogSettings
	metrics   *metrics.Metrics
	cache     *ResultCache
	watcher   *Watcher
	scheduler *ReloadScheduler

	snap       *snapshot
	generation uint64
	closed     bool
	mu         sync.RWMutex

	// reloadMu serialises rebuilds so two reloads never race to swap.
	reloadMu sync.Mutex
}

// NewService creates a new catalog service. m may be nil.
func NewService(settings *config.CatalogSettings, m *metrics.Metrics) (*Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	s := &Service{
		settings: settings,
		metrics:  m,
	}
	if settings.Cache.Enabled {
		s.cache = NewResultCache(settings.Cache.Size, settings.Cache.TTL, m)
	}
	return s, nil
}

// Initialize loads the catalog, builds the engines and, when configured, starts watching the file.
//
// A missing or unreadable catalog file falls back to the embedded catalog.
// A catalog with blank or duplicate IDs is an error.
func (s *Service) Initialize(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	catalog := LoadCatalog(s.settings.Path)
	slog.Info("Loading catalog", "source", catalog.Source, "components", len(catalog.Components))

	snap, err := s.build(catalog.Components, catalog.Source)
	s.metrics.CatalogLoaded(err, len(catalog.Components))
	if err != nil {
		return fmt.Errorf("failed to build catalog from %s: %w", catalog.Source, err)
	}
	s.swap(snap)

	if s.settings.Watch {
		s.startWatcher(ctx)
	}
	if s.settings.ReloadSchedule != "" {
		s.startScheduler(ctx)
	}
	return nil
}

// startScheduler starts polling the catalog file. An invalid schedule is logged and polling stays off.
func (s *Service) startScheduler(ctx context.Context) {
	r, err := NewReloadScheduler(s.settings.Path, s.settings.ReloadSchedule, s.Reload)
	if err != nil {
		slog.Warn("Failed to schedule catalog reloads", "error", err)
		return
	}

	s.mu.Lock()
	s.scheduler = r
	s.mu.Unlock()

	r.Start(ctx)
}

// startWatcher starts the file watcher. Failures are logged; the service keeps serving the loaded catalog.
func (s *Service) startWatcher(ctx context.Context) {
	if _, err := os.Stat(filepath.Dir(s.settings.Path)); err != nil {
		slog.Warn("Catalog directory is not accessible, hot reload disabled", "path", s.settings.Path, "error", err)
		return
	}

	w, err := NewWatcher(s.settings.Path, s.settings.WatchDebounce, s.Reload)
	if err != nil {
		slog.Warn("Failed to start catalog watcher, hot reload disabled", "error", err)
		return
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()

	w.Start(ctx)
}

// Reload re-reads the catalog file and swaps in a new build.
// On any failure the current catalog stays in service.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	components, err := ReadCatalogFile(s.settings.Path)
	if err == nil && len(components) == 0 {
		err = fmt.Errorf("catalog %s has no components", s.settings.Path)
	}
	if err != nil {
		s.metrics.CatalogLoaded(err, 0)
		return err
	}

	snap, err := s.build(components, s.settings.Path)
	s.metrics.CatalogLoaded(err, len(components))
	if err != nil {
		return fmt.Errorf("failed to rebuild catalog: %w", err)
	}

	s.swap(snap)
	slog.Info("Catalog reloaded", "source", snap.source, "components", len(components), "generation", snap.generation)
	return nil
}

// build constructs the token engine and, when enabled, the full-text index in parallel.
func (s *Service) build(components []domain.Component, source string) (*snapshot, error) {
	started := time.Now()
	snap := &snapshot{source: source}

	var g errgroup.Group
	g.Go(func() error {
		engine, err := search.NewEngine(components, search.WithNamePrefix(s.settings.NamePrefix))
		if err != nil {
			return err
		}
		snap.engine = engine
		return nil
	})
	if s.settings.FullText {
		g.Go(func() error {
			ft, err := NewFullTextIndex(components)
			if err != nil {
				return err
			}
			snap.fullText = ft
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if snap.fullText != nil {
			_ = snap.fullText.Close()
		}
		return nil, err
	}

	slog.Info("Catalog indexed",
		"components", snap.engine.Len(),
		"tokens", snap.engine.Index().VocabularySize(),
		"full_text", snap.fullText != nil,
		"duration", time.Since(started))
	return snap, nil
}

// swap installs a new snapshot and releases the previous one.
func (s *Service) swap(snap *snapshot) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if snap.fullText != nil {
			_ = snap.fullText.Close()
		}
		return
	}
	s.generation++
	snap.generation = s.generation
	snap.loadedAt = time.Now()
	old := s.snap
	s.snap = snap
	s.mu.Unlock()

	s.cache.Purge()

	// Readers of the old full-text index hold the read lock for the whole
	// query, so once the swap above completed nobody is using it.
	if old != nil && old.fullText != nil {
		if err := old.fullText.Close(); err != nil {
			slog.Warn("Failed to close previous full-text index", "error", err)
		}
	}
}

// current returns the active snapshot.
func (s *Service) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil || s.closed {
		return nil, ErrNotReady
	}
	return s.snap, nil
}

// IsReady returns true once a catalog has been loaded.
func (s *Service) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil && !s.closed
}

// Settings returns the catalog settings.
func (s *Service) Settings() *config.CatalogSettings {
	return s.settings
}

// DefaultLimit returns the configured search result limit.
func (s *Service) DefaultLimit() int {
	if s.settings.DefaultLimit > 0 {
		return s.settings.DefaultLimit
	}
	return search.DefaultLimit
}

// Status describes the loaded catalog.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil || s.closed {
		return Status{}
	}
	return Status{
		Ready:      true,
		Source:     s.snap.source,
		Components: s.snap.engine.Len(),
		Generation: s.snap.generation,
		LoadedAt:   s.snap.loadedAt,
		FullText:   s.snap.fullText != nil,
	}
}

// Source returns where the active catalog was loaded from.
func (s *Service) Source() string {
	return s.Status().Source
}

// Search runs a token engine query.
func (s *Service) Search(ctx context.Context, req search.Request) ([]domain.SearchResult, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	key := cacheKey(OpSearch, snap.generation, req)
	results, ok := s.cache.Get(key)
	if !ok {
		results = snap.engine.Execute(req)
		s.cache.Add(key, results)
	}
	s.metrics.ObserveSearch(OpSearch, req.Mode.String(), started, len(results))
	return results, nil
}

// FullTextSearch runs a relevance-ranked query against the bleve index.
func (s *Service) FullTextSearch(ctx context.Context, req search.Request) ([]domain.SearchResult, error) {
	// The read lock is held for the whole query so a concurrent reload cannot close the index underneath it.
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil || s.closed {
		return nil, ErrNotReady
	}
	if s.snap.fullText == nil {
		return nil, ErrFullTextDisabled
	}

	started := time.Now()
	key := cacheKey(OpFullText, s.snap.generation, req)
	if results, ok := s.cache.Get(key); ok {
		s.metrics.ObserveSearch(OpFullText, "fulltext", started, len(results))
		return results, nil
	}

	results, err := s.snap.fullText.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, results)
	s.metrics.ObserveSearch(OpFullText, "fulltext", started, len(results))
	return results, nil
}

// Suggest returns component names completing prefix.
func (s *Service) Suggest(prefix string, limit int) ([]string, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	started := time.Now()
	names := snap.engine.Suggest(prefix, limit)
	s.metrics.ObserveSearch(OpSuggest, "prefix", started, len(names))
	return names, nil
}

// Related returns IDs of components related to id.
func (s *Service) Related(id string, limit int) ([]string, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	started := time.Now()
	ids := snap.engine.Related(id, limit)
	s.metrics.ObserveSearch(OpRelated, "related", started, len(ids))
	return ids, nil
}

// Component returns a single component by ID.
func (s *Service) Component(id string) (domain.Component, error) {
	snap, err := s.current()
	if err != nil {
		return domain.Component{}, err
	}
	c, ok := snap.engine.Component(id)
	if !ok {
		return domain.Component{}, fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	return c, nil
}

// Components returns the whole catalog in order.
func (s *Service) Components() ([]domain.Component, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.engine.Components(), nil
}

// ByTag returns the IDs of components carrying any of the tags.
func (s *Service) ByTag(tags []string) ([]string, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.engine.ByTag(tags), nil
}

// Categories summarises the categories present in the catalog, in catalog order.
func (s *Service) Categories() ([]CategorySummary, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, c := range snap.engine.Components() {
		counts[c.Category]++
	}

	keys := snap.engine.Categories()
	summaries := make([]CategorySummary, 0, len(keys))
	for _, key := range keys {
		info, known := domain.LookupCategory(key)
		summaries = append(summaries, CategorySummary{
			CategoryInfo: info,
			Count:        counts[key],
			Known:        known,
		})
	}
	return summaries, nil
}

// Close releases all resources. It is safe to call more than once.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	w := s.watcher
	sched := s.scheduler
	snap := s.snap
	s.watcher = nil
	s.scheduler = nil
	s.snap = nil
	s.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}

	var errs []error
	if w != nil {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if snap != nil && snap.fullText != nil {
		if err := snap.fullText.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.cache.Purge()

	return errors.Join(errs...)
}
