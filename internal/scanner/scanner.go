// Package scanner implements depth-bounded, skip-aware discovery of log
// directories for a named application, plus the persisted registry of
// user-supplied custom directories consulted before any broad scan.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agext/levenshtein"
	"github.com/google/uuid"

	"github.com/mwinther/protokoll/internal/inspect"
	"github.com/mwinther/protokoll/internal/logger"
	"github.com/mwinther/protokoll/internal/platform"
)

// ErrDepthExceeded reports that a walk reached a directory deeper than the
// hard ceiling. It aborts the walk of that base directory only; the scan
// continues with the remaining bases.
var ErrDepthExceeded = errors.New("directory depth exceeds hard ceiling")

// similarityThreshold is the minimum Levenshtein similarity ratio for a
// directory basename to count as string-similar to the application name.
const similarityThreshold = 0.6

// minSimilarityLength: similarity matching only applies when both names are
// longer than this, short names produce too many false positives.
const minSimilarityLength = 6

// Result is the outcome of one discovery call. If any exact match exists,
// PotentialMatches is always empty.
type Result struct {
	ExactMatches     []string `json:"exact_matches"`
	PotentialMatches []string `json:"potential_matches"`

	// Reason explains an empty result caused by query validation.
	Reason string `json:"reason,omitempty"`

	Stats Stats `json:"stats"`
}

// Stats carries traversal counters for one scan run. The counters are
// threaded through the walk explicitly, no shared globals.
type Stats struct {
	RunID       string        `json:"run_id"`
	DirsChecked int           `json:"dirs_checked"`
	DirsSkipped int           `json:"dirs_skipped"`
	Elapsed     time.Duration `json:"elapsed"`

	// NamedOnly lists directories whose basename matched the application
	// exactly but which held no log-like files within the depth limit.
	NamedOnly []string `json:"named_only,omitempty"`

	// DepthAborts lists base directories whose walk hit the hard ceiling.
	DepthAborts []string `json:"depth_aborts,omitempty"`
}

// Scanner performs tiered log-directory discovery. Each call is independent
// and self-contained; concurrent calls share only the immutable skip set.
type Scanner struct {
	registry *Registry
	log      logger.Logger

	// Base-directory sources, injectable for tests.
	appDataDirs func() []string
	extraDirs   func() []string
}

// New creates a Scanner backed by the given registry. A nil log discards
// scan progress.
func New(registry *Registry, log logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Scanner{
		registry:    registry,
		log:         log,
		appDataDirs: platform.AppDataDirs,
		extraDirs:   platform.ExtraDirs,
	}
}

// ValidateSearchQuery checks whether discovery is allowed for the query.
// Empty names and names colliding with the skip set (case-insensitive
// substring in either direction) are rejected before any filesystem access,
// since they would classify system-wide directories as application logs.
func ValidateSearchQuery(appName string) (bool, string) {
	if appName == "" {
		return false, "No application name provided"
	}

	appNameLower := strings.ToLower(appName)
	for skipDir := range skipDirs {
		skipLower := strings.ToLower(skipDir)
		if strings.Contains(appNameLower, skipLower) || strings.Contains(skipLower, appNameLower) {
			return false, fmt.Sprintf(
				"Search term %q matches system directory %q. Please use manual directory selection.",
				appName, skipDir)
		}
	}

	return true, ""
}

// FindLogDirectories discovers candidate log directories for an application
// name. maxDepth is clamped to the hard ceiling. The search runs in tiers:
// registered custom directories first, then OS application-data directories,
// then platform install roots; a tier only runs when the previous ones found
// nothing. Potential matches are only gathered when no exact match exists
// anywhere. Cancellation is honored between directory visits.
func (s *Scanner) FindLogDirectories(ctx context.Context, appName string, maxDepth int) (*Result, error) {
	start := time.Now()

	result := &Result{
		ExactMatches:     []string{},
		PotentialMatches: []string{},
		Stats:            Stats{RunID: uuid.NewString()},
	}

	if ok, reason := ValidateSearchQuery(appName); !ok {
		s.log.Warnf("invalid search query: %s", reason)
		result.Reason = reason
		return result, nil
	}

	if maxDepth > HardMaxDepth {
		maxDepth = HardMaxDepth
	}
	if maxDepth < 0 {
		maxDepth = 0
	}

	appNameLower := strings.ToLower(appName)
	s.log.Infof("scan %s: searching for %q (max depth %d)", result.Stats.RunID, appName, maxDepth)

	// Tier 1: registered custom directories, exact matching only.
	customDirs := s.registryDirs()
	exact, err := s.exactPass(ctx, customDirs, appNameLower, maxDepth, &result.Stats)
	if err != nil {
		return result, err
	}

	// Tier 2: OS application-data directories.
	var appData []string
	if len(exact) == 0 {
		appData = s.appDataDirs()
		exact, err = s.exactPass(ctx, appData, appNameLower, maxDepth, &result.Stats)
		if err != nil {
			return result, err
		}
	}

	// Tier 3: install roots, only when the app-data tier found nothing.
	var extra []string
	if len(exact) == 0 {
		extra = s.extraDirs()
		exact, err = s.exactPass(ctx, extra, appNameLower, maxDepth, &result.Stats)
		if err != nil {
			return result, err
		}
	}

	if len(exact) > 0 {
		// Exact matches fully satisfy the query.
		sort.Strings(exact)
		result.ExactMatches = exact
		result.Stats.Elapsed = time.Since(start)
		s.log.Infof("scan %s: %d exact matches in %s (checked %d, skipped %d)",
			result.Stats.RunID, len(exact), result.Stats.Elapsed,
			result.Stats.DirsChecked, result.Stats.DirsSkipped)
		return result, nil
	}

	if appData == nil {
		appData = s.appDataDirs()
	}
	if extra == nil {
		extra = s.extraDirs()
	}

	potential, err := s.potentialPass(ctx, append(appData, extra...), appNameLower, maxDepth, &result.Stats)
	if err != nil {
		return result, err
	}

	sort.Strings(potential)
	result.PotentialMatches = potential
	result.Stats.Elapsed = time.Since(start)
	s.log.Infof("scan %s: no exact matches, %d potential matches in %s (checked %d, skipped %d)",
		result.Stats.RunID, len(potential), result.Stats.Elapsed,
		result.Stats.DirsChecked, result.Stats.DirsSkipped)

	return result, nil
}

// registryDirs loads the custom registry, degrading to empty on failure.
func (s *Scanner) registryDirs() []string {
	if s.registry == nil {
		return nil
	}
	dirs, err := s.registry.List()
	if err != nil {
		s.log.Errorf("loading custom directories: %v", err)
		return nil
	}
	return dirs
}

// exactPass walks the given bases collecting directories whose basename
// equals the application name and which contain log-like files.
func (s *Scanner) exactPass(ctx context.Context, bases []string, appNameLower string, maxDepth int, stats *Stats) ([]string, error) {
	matches := map[string]struct{}{}

	for _, base := range bases {
		err := s.walkBase(ctx, base, maxDepth, stats, func(dir string) {
			if strings.ToLower(filepath.Base(dir)) != appNameLower {
				return
			}
			if hasLogFiles(dir, maxDepth) {
				s.log.Infof("found exact match: %s", dir)
				matches[dir] = struct{}{}
			} else {
				s.log.Debugf("name matches but no log files: %s", dir)
				stats.NamedOnly = append(stats.NamedOnly, dir)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	return keys(matches), nil
}

// potentialPass walks the given bases collecting directories whose name
// matches log vocabulary with the app name in the path, or whose basename is
// string-similar to the app name, and which contain log-like files.
func (s *Scanner) potentialPass(ctx context.Context, bases []string, appNameLower string, maxDepth int, stats *Stats) ([]string, error) {
	matches := map[string]struct{}{}

	for _, base := range bases {
		err := s.walkBase(ctx, base, maxDepth, stats, func(dir string) {
			if !isPotentialCandidate(dir, appNameLower) {
				return
			}
			if hasLogFiles(dir, maxDepth) {
				s.log.Infof("found potential match: %s", dir)
				matches[dir] = struct{}{}
			} else {
				s.log.Debugf("no log files in potential match: %s", dir)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	return keys(matches), nil
}

// walkBase walks one base directory, applying the skip rules and invoking
// visit for every directory that survives them. A hard-ceiling violation
// aborts this base only and is recorded in the stats; context cancellation
// aborts the whole scan.
func (s *Scanner) walkBase(ctx context.Context, base string, maxDepth int, stats *Stats, visit func(dir string)) error {
	if _, err := os.Stat(base); err != nil {
		return nil
	}

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Permission and transient listing errors: skip and continue.
			s.log.Tracef("skipping %s: %v", path, err)
			stats.DirsSkipped++
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		if path != base {
			name := d.Name()
			if _, skip := skipDirs[name]; skip {
				stats.DirsSkipped++
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") {
				stats.DirsSkipped++
				return filepath.SkipDir
			}

			depth := relativeDepth(base, path)
			if depth > HardMaxDepth {
				return ErrDepthExceeded
			}
			if depth > maxDepth {
				stats.DirsSkipped++
				return filepath.SkipDir
			}
		}

		stats.DirsChecked++
		visit(path)
		return nil
	})

	if errors.Is(err, ErrDepthExceeded) {
		s.log.Errorf("aborting walk of %s: %v", base, err)
		stats.DepthAborts = append(stats.DepthAborts, base)
		return nil
	}
	return err
}

// relativeDepth is the number of path segments between base and path.
// The base itself has depth 0.
func relativeDepth(base, path string) int {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// isPotentialCandidate applies the potential-match naming rules.
func isPotentialCandidate(dir, appNameLower string) bool {
	dirName := strings.ToLower(filepath.Base(dir))

	for _, pattern := range logNamePatterns {
		if pattern.MatchString(dirName) {
			return strings.Contains(strings.ToLower(dir), appNameLower)
		}
	}

	if len(appNameLower) > minSimilarityLength && len(dirName) > minSimilarityLength {
		return levenshtein.Match(dirName, appNameLower, nil) >= similarityThreshold
	}

	return false
}

// hasLogFiles reports whether the directory contains at least one log-like
// file, searching breadth-first up to maxDepth additional levels. Listing
// errors (typically permissions) skip the directory and continue.
func hasLogFiles(dir string, maxDepth int) bool {
	type item struct {
		dir   string
		depth int
	}

	queue := []item{{dir, 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(current.dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() && inspect.IsLogFile(entry.Name()) {
				return true
			}
			if entry.IsDir() && current.depth < maxDepth {
				queue = append(queue, item{filepath.Join(current.dir, entry.Name()), current.depth + 1})
			}
		}
	}
	return false
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
