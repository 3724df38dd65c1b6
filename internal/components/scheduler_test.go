package components

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingReload(calls *atomic.Int32, err error) ReloadFunc {
	return func(context.Context) error {
		calls.Add(1)
		return err
	}
}

// touch rewrites the file and moves its mtime forward so the change is visible
// even on file systems with coarse timestamps.
func touch(t *testing.T, path string, content string, offset time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	stamp := time.Now().Add(offset)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

func TestNewReloadScheduler_Validation(t *testing.T) {
	var calls atomic.Int32
	reload := countingReload(&calls, nil)

	_, err := NewReloadScheduler("", "@every 1m", reload)
	assert.Error(t, err)

	_, err = NewReloadScheduler("catalog.json", "@every 1m", nil)
	assert.Error(t, err)

	_, err = NewReloadScheduler("catalog.json", "sometimes", reload)
	assert.ErrorContains(t, err, "invalid reload schedule")

	r, err := NewReloadScheduler("catalog.json", "*/5 * * * *", reload)
	require.NoError(t, err)
	r.Stop() // never started
}

func TestReloadScheduler_PollOnlyReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	touch(t, path, `{"components": []}`, -time.Hour)

	var calls atomic.Int32
	r, err := NewReloadScheduler(path, "@every 1m", countingReload(&calls, nil))
	require.NoError(t, err)

	ctx := context.Background()
	assert.False(t, r.poll(ctx), "unchanged file")
	assert.Equal(t, int32(0), calls.Load())

	touch(t, path, `{"components": [{"id": "a"}]}`, time.Minute)
	assert.True(t, r.poll(ctx))
	assert.Equal(t, int32(1), calls.Load())

	assert.False(t, r.poll(ctx), "already seen")
	assert.Equal(t, int32(1), calls.Load())
}

func TestReloadScheduler_PollSkipsMissingFileAndCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")

	var calls atomic.Int32
	r, err := NewReloadScheduler(path, "@every 1m", countingReload(&calls, nil))
	require.NoError(t, err)

	assert.False(t, r.poll(context.Background()), "missing file")

	touch(t, path, `{}`, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, r.poll(ctx), "cancelled context")

	assert.Equal(t, int32(0), calls.Load())
}

func TestReloadScheduler_PollSurvivesReloadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	touch(t, path, `{}`, -time.Hour)

	var calls atomic.Int32
	r, err := NewReloadScheduler(path, "@every 1m", countingReload(&calls, errors.New("duplicate id")))
	require.NoError(t, err)

	touch(t, path, `{"components": []}`, time.Minute)
	assert.True(t, r.poll(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestReloadScheduler_StartRunsOnSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	touch(t, path, `{}`, -time.Hour)

	var calls atomic.Int32
	r, err := NewReloadScheduler(path, "@every 1s", countingReload(&calls, nil))
	require.NoError(t, err)

	r.Start(context.Background())
	defer r.Stop()

	touch(t, path, `{"components": []}`, time.Minute)

	require.Eventually(t, func() bool {
		return calls.Load() == 1
	}, 5*time.Second, 50*time.Millisecond)
}
