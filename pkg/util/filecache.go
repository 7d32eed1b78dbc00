// FileCache provides read access to source files via memory-mapped regions.
//
// The Program keeps every source file of a compilation alive for the whole
// extraction pass (tree-sitter nodes reference byte offsets into it), so
// mapping the file is cheaper than copying it: only accessed pages are
// loaded into RAM, and repeated builds of the same workspace hit the cache.
//
// Falls back to os.ReadFile when mmap fails (unusual filesystems, pipes).
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache caches file contents keyed by path.
//
// Thread-safe: reads take a shared lock, loads take an exclusive lock.
type FileCache interface {
	// Get returns the file's contents, loading and caching it on first
	// access. The returned slice must be treated as read-only and stays
	// valid until Close.
	Get(filePath string) ([]byte, error)

	// Invalidate drops a cached file so the next Get re-reads it.
	// Used by the watcher when a file changes on disk.
	Invalidate(filePath string)

	// Size returns the number of currently cached files.
	Size() int

	// Close unmaps all files and releases file descriptors. The cache
	// cannot be used afterwards.
	Close() error
}

// FileCacheConfig controls FileCache behavior.
type FileCacheConfig struct {
	// MaxFiles limits the number of cached files. 0 means unlimited.
	// When reached, Get returns an error rather than evicting.
	MaxFiles int

	// Logger for mmap fallback warnings. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultFileCacheConfig covers typical workspaces (up to 10K source files).
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{MaxFiles: 10000}
}

// NewFileCache creates a FileCache with the given config.
// A nil config uses DefaultFileCacheConfig().
func NewFileCache(config *FileCacheConfig) FileCache {
	if config == nil {
		config = DefaultFileCacheConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &fileCache{
		config:   config,
		mapped:   make(map[string]*mappedFile),
		fallback: make(map[string][]byte),
		logger:   config.Logger,
	}
}

type mappedFile struct {
	data mmap.MMap
	file *os.File
}

type fileCache struct {
	config   *FileCacheConfig
	logger   *slog.Logger
	mu       sync.RWMutex
	mapped   map[string]*mappedFile
	fallback map[string][]byte
}

func (fc *fileCache) Get(filePath string) ([]byte, error) {
	fc.mu.RLock()
	if mf, ok := fc.mapped[filePath]; ok {
		fc.mu.RUnlock()
		return mf.data, nil
	}
	if data, ok := fc.fallback[filePath]; ok {
		fc.mu.RUnlock()
		return data, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Another goroutine may have loaded it while we waited for the lock.
	if mf, ok := fc.mapped[filePath]; ok {
		return mf.data, nil
	}
	if data, ok := fc.fallback[filePath]; ok {
		return data, nil
	}

	if fc.config.MaxFiles > 0 && len(fc.mapped)+len(fc.fallback) >= fc.config.MaxFiles {
		return nil, fmt.Errorf("file cache limit reached: %d files (increase FileCacheConfig.MaxFiles)",
			fc.config.MaxFiles)
	}

	return fc.load(filePath)
}

// load opens and maps a file. Must be called with mu held exclusively.
func (fc *fileCache) load(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", filePath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat %q: %w", filePath, err)
	}

	// Zero-length files cannot be mapped.
	if stat.Size() == 0 {
		file.Close()
		fc.fallback[filePath] = []byte{}
		return []byte{}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, using fallback",
			"file", filePath,
			"error", err)
		file.Close()
		raw, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("mmap and fallback both failed for %q: mmap: %v, read: %w",
				filePath, err, readErr)
		}
		fc.fallback[filePath] = raw
		return raw, nil
	}

	fc.mapped[filePath] = &mappedFile{data: data, file: file}
	return data, nil
}

func (fc *fileCache) Invalidate(filePath string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.mapped[filePath]; ok {
		if err := mf.data.Unmap(); err != nil {
			fc.logger.Warn("failed to unmap file", "file", filePath, "error", err)
		}
		mf.file.Close()
		delete(fc.mapped, filePath)
	}
	delete(fc.fallback, filePath)
}

func (fc *fileCache) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.mapped) + len(fc.fallback)
}

func (fc *fileCache) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var errs []error
	for path, mf := range fc.mapped {
		if err := mf.data.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap %q: %w", path, err))
		}
		if err := mf.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", path, err))
		}
	}
	fc.mapped = make(map[string]*mappedFile)
	fc.fallback = make(map[string][]byte)

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}
