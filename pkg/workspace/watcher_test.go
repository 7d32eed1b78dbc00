package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_WriteTriggersCallback(t *testing.T) {
	tmp := t.TempDir()
	b := newTestBuilder(t)

	changed := make(chan string, 8)
	w, err := NewWatcher(b, WatchOptions{DebounceMs: 50},
		func(path string) { changed <- path }, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(tmp))

	path := filepath.Join(tmp, "a.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const a = 1;"), 0644))

	select {
	case got := <-changed:
		assert.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestWatcher_IgnoresNonSourceFiles(t *testing.T) {
	tmp := t.TempDir()
	b := newTestBuilder(t)

	changed := make(chan string, 8)
	w, err := NewWatcher(b, WatchOptions{DebounceMs: 50},
		func(path string) { changed <- path }, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(tmp))

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "notes.txt"), []byte("hi"), 0644))

	select {
	case got := <-changed:
		t.Fatalf("unexpected callback for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	b := newTestBuilder(t)

	w, err := NewWatcher(b, DefaultWatchOptions(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(t.TempDir()))

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_StartAfterStop(t *testing.T) {
	b := newTestBuilder(t)

	w, err := NewWatcher(b, DefaultWatchOptions(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Stop())

	assert.Error(t, w.Start(t.TempDir()))
}
