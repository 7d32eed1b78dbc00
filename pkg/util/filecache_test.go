package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, config *FileCacheConfig) FileCache {
	t.Helper()
	fc := NewFileCache(config)
	t.Cleanup(func() { _ = fc.Close() })
	return fc
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileCache_Get(t *testing.T) {
	fc := newTestCache(t, nil)
	path := writeTemp(t, "a.ts", "export const a = 1;")

	data, err := fc.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "export const a = 1;", string(data))
	assert.Equal(t, 1, fc.Size())

	// Second read hits the cache.
	again, err := fc.Get(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
	assert.Equal(t, 1, fc.Size())
}

func TestFileCache_GetMissing(t *testing.T) {
	fc := newTestCache(t, nil)

	_, err := fc.Get(filepath.Join(t.TempDir(), "nope.ts"))
	assert.Error(t, err)
}

func TestFileCache_EmptyFile(t *testing.T) {
	fc := newTestCache(t, nil)
	path := writeTemp(t, "empty.ts", "")

	data, err := fc.Get(path)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, 1, fc.Size())
}

func TestFileCache_Invalidate(t *testing.T) {
	fc := newTestCache(t, nil)
	path := writeTemp(t, "a.ts", "export const a = 1;")

	_, err := fc.Get(path)
	require.NoError(t, err)

	fc.Invalidate(path)
	assert.Equal(t, 0, fc.Size())

	require.NoError(t, os.WriteFile(path, []byte("export const b = 2;"), 0644))
	data, err := fc.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "export const b = 2;", string(data))
}

func TestFileCache_InvalidateUnknownPath(t *testing.T) {
	fc := newTestCache(t, nil)
	fc.Invalidate("/never/loaded.ts") // no-op
	assert.Equal(t, 0, fc.Size())
}

func TestFileCache_MaxFilesLimit(t *testing.T) {
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 1})

	first := writeTemp(t, "a.ts", "a")
	second := writeTemp(t, "b.ts", "b")

	_, err := fc.Get(first)
	require.NoError(t, err)

	_, err = fc.Get(second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file cache limit reached")
}

func TestFileCache_Close(t *testing.T) {
	fc := NewFileCache(nil)
	path := writeTemp(t, "a.ts", "export const a = 1;")

	_, err := fc.Get(path)
	require.NoError(t, err)

	require.NoError(t, fc.Close())
	assert.Equal(t, 0, fc.Size())
}

func TestGetOptimalPoolSize(t *testing.T) {
	size := GetOptimalPoolSize()
	assert.GreaterOrEqual(t, size, 4)
	assert.LessOrEqual(t, size, 32)
}

func TestGetOptimalPoolSizeWithOverride(t *testing.T) {
	assert.Equal(t, 7, GetOptimalPoolSizeWithOverride(7))
	assert.Equal(t, GetOptimalPoolSize(), GetOptimalPoolSizeWithOverride(0))
	assert.Equal(t, GetOptimalPoolSize(), GetOptimalPoolSizeWithOverride(-1))
}
