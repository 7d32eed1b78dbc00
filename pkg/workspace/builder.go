package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/tsdocgen/pkg/checker"
	"github.com/gnana997/tsdocgen/pkg/docs"
	"github.com/gnana997/tsdocgen/pkg/parser"
	"github.com/gnana997/tsdocgen/pkg/util"
)

// Builder produces documentation for a set of files, caching per-file
// results so repeated builds only re-extract what changed.
//
// Staleness is detected by modification time and size. Unchanged files
// are served from an LRU cache; stale files are re-read, re-parsed, and
// re-extracted in a single program. Safe for concurrent use.
type Builder struct {
	parsers *parser.ParserManager
	files   util.FileCache
	cache   *lru.Cache[string, *cachedEntries]
	opts    checker.CompilerOptions
	logger  *slog.Logger
	mu      sync.Mutex
}

// cachedEntries holds the extraction result for one file along with the
// file identity it was computed from.
type cachedEntries struct {
	modTime time.Time
	size    int64
	entries []docs.DocEntry
}

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// MaxCachedFiles bounds the per-file result cache. Zero means 1000.
	MaxCachedFiles int

	// Options are passed through to every program the builder compiles.
	Options checker.CompilerOptions

	Logger *slog.Logger
}

// NewBuilder creates a builder with its own parser pool and mmap-backed
// file cache.
func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	if cfg.MaxCachedFiles == 0 {
		cfg.MaxCachedFiles = 1000
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.NewWithEvict(cfg.MaxCachedFiles, func(key string, value *cachedEntries) {
		logger.Debug("evicting cached file", "path", key, "entries", len(value.entries))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	// The file cache outlives individual builds, so it is sized for the
	// whole workspace rather than the result cache.
	files := util.NewFileCache(&util.FileCacheConfig{
		MaxFiles: 10000,
		Logger:   logger,
	})

	return &Builder{
		parsers: parser.NewParserManager(logger),
		files:   files,
		cache:   cache,
		opts:    cfg.Options,
		logger:  logger,
	}, nil
}

// BuildDir discovers files under root with the given config and builds
// documentation for all of them.
func (b *Builder) BuildDir(root string, cfg Config) ([]docs.DocEntry, error) {
	paths, err := DiscoverFiles(root, cfg)
	if err != nil {
		return nil, err
	}
	return b.Build(paths)
}

// Build returns the documentation entries for the given files, in the
// given file order. Files whose cached result is still valid are not
// re-extracted. A file that no longer exists is dropped from the cache
// and skipped.
func (b *Builder) Build(paths []string) ([]docs.DocEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := make(map[string]os.FileInfo, len(paths))
	var stale []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			b.logger.Warn("skipping unreadable file", "file", path, "error", err)
			b.cache.Remove(path)
			b.files.Invalidate(path)
			continue
		}
		stats[path] = info

		if cached, ok := b.cache.Get(path); ok &&
			cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
			continue
		}
		stale = append(stale, path)
	}

	if len(stale) > 0 {
		b.logger.Debug("rebuilding stale files", "count", len(stale))
		for _, path := range stale {
			b.files.Invalidate(path)
		}

		program, err := checker.NewProgram(stale, b.opts, b.parsers, b.files, b.logger)
		if err != nil {
			return nil, err
		}
		entries, err := docs.Extract(program, b.logger)
		program.Close()
		if err != nil {
			return nil, err
		}

		byFile := make(map[string][]docs.DocEntry, len(stale))
		for _, entry := range entries {
			byFile[entry.FileName] = append(byFile[entry.FileName], entry)
		}
		for _, path := range stale {
			info := stats[path]
			b.cache.Add(path, &cachedEntries{
				modTime: info.ModTime(),
				size:    info.Size(),
				entries: byFile[path],
			})
		}
	}

	var out []docs.DocEntry
	for _, path := range paths {
		if _, ok := stats[path]; !ok {
			continue
		}
		if cached, ok := b.cache.Get(path); ok {
			out = append(out, cached.entries...)
		}
	}
	return out, nil
}

// Invalidate drops any cached result for a file, forcing re-extraction
// on the next build.
func (b *Builder) Invalidate(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.Remove(path)
	b.files.Invalidate(path)
}

// Close releases the parser pools and the file cache.
func (b *Builder) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.Purge()
	if err := b.parsers.Close(); err != nil {
		return err
	}
	return b.files.Close()
}
