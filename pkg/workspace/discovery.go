// Package workspace ties file discovery, incremental extraction, and
// change watching together over a project directory.
package workspace

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Config controls which files under a root are part of the workspace.
type Config struct {
	// Include globs, matched against slash-separated paths relative to
	// the root. Empty means every discovered file is included.
	Include []string `yaml:"include"`

	// Exclude globs. A matched directory is skipped entirely.
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns the patterns used when no project config exists:
// all TypeScript and JavaScript sources, minus dependency and build
// output directories.
func DefaultConfig() Config {
	return Config{
		Include: []string{
			"**/*.ts", "**/*.tsx", "**/*.mts", "**/*.cts",
			"**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs",
		},
		Exclude: []string{
			"**/node_modules/**",
			"**/.git/**",
			"**/dist/**",
			"**/build/**",
			"**/.next/**",
		},
	}
}

// DiscoverFiles walks rootDir applying the config's include/exclude
// globs. Returns a sorted slice of absolute file paths for deterministic
// output.
func DiscoverFiles(rootDir string, cfg Config) ([]string, error) {
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		// Exclusions apply to directories and files alike.
		for _, pattern := range cfg.Exclude {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if len(cfg.Include) > 0 {
			matched := false
			for _, pattern := range cfg.Include {
				if m, _ := doublestar.PathMatch(pattern, relPath); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
