package components

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrCatalogLocked is returned when another process keeps a catalog locked past the timeout.
var ErrCatalogLocked = errors.New("catalog is locked by another process")

const (
	// catalogLockTimeout bounds how long SaveCatalog waits for a concurrent writer.
	catalogLockTimeout = 5 * time.Second

	lockRetryDelay = 25 * time.Millisecond
)

// catalogLock is an exclusive lock on a sidecar file next to a catalog.
// The OS drops it if the holder dies.
type catalogLock struct {
	flock *flock.Flock
}

// lockPathFor returns the sidecar lock file used for a catalog path.
func lockPathFor(catalogPath string) string {
	return catalogPath + ".lock"
}

// acquireCatalogLock blocks until the lock for catalogPath is held, ctx is done or timeout passes.
func acquireCatalogLock(ctx context.Context, catalogPath string, timeout time.Duration) (*catalogLock, error) {
	path := lockPathFor(catalogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fl := flock.New(path)
	locked, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	switch {
	case locked:
		return &catalogLock{flock: fl}, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: %s", ErrCatalogLocked, catalogPath)
	case err != nil:
		return nil, fmt.Errorf("failed to lock catalog: %w", err)
	default:
		return nil, fmt.Errorf("%w: %s", ErrCatalogLocked, catalogPath)
	}
}

// release drops the lock. The sidecar file is left in place so waiters keep a stable inode.
func (l *catalogLock) release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	err := l.flock.Unlock()
	l.flock = nil
	return err
}
