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

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc rebuilds state from the catalog file.
type ReloadFunc func(ctx context.Context) error

// Watcher triggers a reload when the catalog file changes.
//
// The parent directory is watched rather than the file itself, so editors and
// tools that replace the file with a rename keep being observed. Bursts of
// events are coalesced into one reload after the debounce delay.
type Watcher struct {
	path     string
	debounce time.Duration
	reload   ReloadFunc
	watcher  *fsnotify.Watcher

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher creates a watcher for the catalog file at path.
func NewWatcher(path string, debounce time.Duration, reload ReloadFunc) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path cannot be empty")
	}
	if reload == nil {
		return nil, fmt.Errorf("reload function cannot be nil")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	return &Watcher{
		path:     absPath,
		debounce: debounce,
		reload:   reload,
		watcher:  fw,
	}, nil
}

// Start runs the event loop until ctx is done or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
	slog.Info("Watching catalog file for changes", "path", w.path)
}

func (w *Watcher) run(ctx context.Context) {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Catalog file event", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.fire(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Catalog watcher error", "error", err)
		}
	}
}

// relevant reports whether an event concerns the catalog file and may change its content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *Watcher) fire(ctx context.Context) {
	// A remove or rename without a replacement leaves nothing to load.
	if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
		slog.Warn("Catalog file was removed, keeping current catalog", "path", w.path)
		return
	}

	if err := w.reload(ctx); err != nil {
		slog.Error("Failed to reload catalog", "path", w.path, "error", err)
	}
}

// Close stops the watcher and waits for the event loop to exit. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
		w.wg.Wait()
	})
	if err != nil {
		return fmt.Errorf("failed to close file watcher: %w", err)
	}
	return nil
}
