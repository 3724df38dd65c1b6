package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ReloadScheduler polls the catalog file on a cron schedule and reloads it when
// its size or modification time changed. It covers file systems where change
// notifications are not delivered, such as network mounts.
type ReloadScheduler struct {
	path     string
	spec     string
	schedule cron.Schedule
	reload   ReloadFunc

	cron *cron.Cron

	mu      sync.Mutex
	size    int64
	modTime time.Time
}

// NewReloadScheduler creates a scheduler for the catalog at path. spec uses the
// standard five-field cron syntax or a descriptor such as "@every 5m".
func NewReloadScheduler(path, spec string, reload ReloadFunc) (*ReloadScheduler, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path cannot be empty")
	}
	if reload == nil {
		return nil, fmt.Errorf("reload function cannot be nil")
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}

	r := &ReloadScheduler{
		path:     path,
		spec:     spec,
		schedule: schedule,
		reload:   reload,
	}
	r.changed()
	return r, nil
}

// Start schedules the polling job. Overlapping runs are skipped.
func (r *ReloadScheduler) Start(ctx context.Context) {
	r.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	r.cron.Schedule(r.schedule, cron.FuncJob(func() { r.poll(ctx) }))
	r.cron.Start()
	slog.Info("Polling catalog file", "path", r.path, "schedule", r.spec)
}

// Stop cancels future runs and waits for a running one to finish.
func (r *ReloadScheduler) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

// poll reloads the catalog when the file changed since the last look.
// Returns true when a reload was attempted.
func (r *ReloadScheduler) poll(ctx context.Context) bool {
	if ctx.Err() != nil || !r.changed() {
		return false
	}

	slog.Debug("Catalog file changed, reloading", "path", r.path)
	if err := r.reload(ctx); err != nil {
		slog.Warn("Scheduled catalog reload failed", "path", r.path, "error", err)
	}
	return true
}

// changed records the file's current size and modification time and reports
// whether either differs from the previous observation. A missing file is not a change.
func (r *ReloadScheduler) changed() bool {
	info, err := os.Stat(r.path)
	if err != nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if info.Size() == r.size && info.ModTime().Equal(r.modTime) {
		return false
	}
	r.size = info.Size()
	r.modTime = info.ModTime()
	return true
}
