// Package listing enumerates the log files inside a directory, typically
// one produced by discovery. Scanning is error tolerant: unreadable
// entries are collected as warnings and the listing continues.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mwinther/protokoll/internal/inspect"
	"github.com/mwinther/protokoll/internal/scanner"
)

// Options configures a directory listing.
type Options struct {
	// Pattern is a regex matched against filenames without their extension
	Pattern string
	// Recursive enables descending into subdirectories
	Recursive bool
	// MaxDepth limits recursion depth (0 = unlimited, 1 = top level only)
	MaxDepth int
	// IncludeAll lists every file instead of only log-like ones
	IncludeAll bool
}

// Entry describes one listed file.
type Entry struct {
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	SizeHuman  string    `json:"size_human"`
	Modified   time.Time `json:"last_modified"`
	Compressed bool      `json:"is_compressed"`
}

// Result holds the listed files, newest first, plus non-fatal errors.
type Result struct {
	Entries []Entry `json:"entries"`
	Errors  []error `json:"-"`
}

// List enumerates log files under dir. Hidden directories and the shared
// discovery skip set are never descended into.
func List(dir string, opts Options) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var pattern *regexp.Regexp
	if opts.Pattern != "" {
		pattern, err = regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	exclude := map[string]struct{}{}
	for _, name := range scanner.SkipDirNames() {
		exclude[name] = struct{}{}
	}

	result := &Result{Entries: []Entry{}}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if _, skip := exclude[d.Name()]; skip || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				rel, _ := filepath.Rel(dir, path)
				depth := strings.Count(rel, string(filepath.Separator)) + 1
				if depth >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !opts.IncludeAll && !inspect.IsLogFile(path) {
			return nil
		}
		if pattern != nil {
			name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			if !pattern.MatchString(name) {
				return nil
			}
		}

		stat, err := d.Info()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to stat %s: %w", path, err))
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}

		result.Entries = append(result.Entries, Entry{
			Path:       abs,
			Size:       stat.Size(),
			SizeHuman:  inspect.FormatSize(stat.Size()),
			Modified:   stat.ModTime(),
			Compressed: inspect.IsCompressed(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Newest first; path breaks ties so output stays deterministic.
	sort.Slice(result.Entries, func(i, j int) bool {
		if !result.Entries[i].Modified.Equal(result.Entries[j].Modified) {
			return result.Entries[i].Modified.After(result.Entries[j].Modified)
		}
		return result.Entries[i].Path < result.Entries[j].Path
	})

	return result, nil
}
