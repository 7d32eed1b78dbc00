package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/tsdocgen/pkg/parser"
)

// WatchOptions configures the file watcher.
type WatchOptions struct {
	// DebounceMs groups rapid events on the same file into one rebuild.
	// Zero means 200ms.
	DebounceMs int
}

// DefaultWatchOptions returns the defaults used by the watch command.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// Watcher watches a workspace for source changes, invalidates the
// builder's cached results for changed files, and invokes a rebuild
// callback after a debounce window.
type Watcher struct {
	watcher *fsnotify.Watcher
	builder *Builder
	logger  *slog.Logger
	options WatchOptions

	// onChange runs after the debounce window of each changed file.
	onChange func(path string)

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher bound to a builder. The onChange callback
// runs on the watcher's goroutine after each debounced change, with the
// builder's stale state already invalidated.
func NewWatcher(builder *Builder, options WatchOptions, onChange func(path string), logger *slog.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		watcher:        watcher,
		builder:        builder,
		logger:         logger,
		options:        options,
		onChange:       onChange,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching rootPath and its subdirectories. Runs the event
// loop in a background goroutine.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	if err := w.watcher.Add(rootPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootPath, err)
	}

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Continue on error.
		}
		if info.IsDir() {
			if w.shouldIgnore(path) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	w.logger.Info("file watcher started", "root", rootPath)

	go w.eventLoop()

	return nil
}

// Stop stops the watcher. Idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	filePath := event.Name

	if w.shouldIgnore(filePath) {
		return
	}

	// Newly created directories need a watch of their own.
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(filePath); err == nil && info.IsDir() {
			if err := w.watcher.Add(filePath); err != nil {
				w.logger.Warn("failed to watch directory", "path", filePath, "error", err)
			}
			return
		}
	}

	if parser.DetectLanguage(filePath) == parser.LanguageUnknown {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", filePath)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write,
		event.Op&fsnotify.Create == fsnotify.Create:
		w.debounceRebuild(filePath)

	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.builder.Invalidate(filePath)
		if w.onChange != nil {
			w.onChange(filePath)
		}
	}
}

// debounceRebuild schedules a rebuild after the debounce delay. Repeated
// events on the same file within the window collapse into one rebuild.
func (w *Watcher) debounceRebuild(filePath string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[filePath]; exists {
		timer.Stop()
	}

	w.debounceTimers[filePath] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.logger.Debug("rebuilding changed file", "file", filePath)
			w.builder.Invalidate(filePath)
			if w.onChange != nil {
				w.onChange(filePath)
			}

			w.debounceMu.Lock()
			delete(w.debounceTimers, filePath)
			w.debounceMu.Unlock()
		},
	)
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch base {
	case "node_modules", ".git", "dist", "build", ".next":
		return true
	}
	return false
}
