package scanner

import "regexp"

// HardMaxDepth is the absolute traversal depth ceiling. Caller-requested
// depths beyond it are clamped, never rejected.
const HardMaxDepth = 10

// skipDirs is the immutable set of directory basenames that are never
// descended into or reported as matches: build artifacts, VCS metadata,
// virtual environments and other system trees.
var skipDirs = map[string]struct{}{
	"node_modules":     {},
	"dist":             {},
	"build":            {},
	"target":           {},
	"bin":              {},
	"obj":              {},
	"Debug":            {},
	"Release":          {},
	"x64":              {},
	"x86":              {},
	"amd64":            {},
	"win32":            {},
	"win64":            {},
	".git":             {},
	".svn":             {},
	".vs":              {},
	".idea":            {},
	"__pycache__":      {},
	"venv":             {},
	"env":              {},
	".env":             {},
	"virtualenv":       {},
	"site-packages":    {},
	"lib":              {},
	"include":          {},
	"share":            {},
	"doc":              {},
	"docs":             {},
	"test":             {},
	"tests":            {},
	"examples":         {},
	"samples":          {},
	"templates":        {},
	"cache":            {},
	"temp":             {},
	"tmp":              {},
	"Application Data": {},
}

// logNamePatterns is the log-related vocabulary a directory basename may
// match to qualify as a potential candidate.
var logNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)logs?`),
	regexp.MustCompile(`(?i)logfiles?`),
	regexp.MustCompile(`(?i)logging`),
	regexp.MustCompile(`(?i)debug`),
	regexp.MustCompile(`(?i)trace`),
	regexp.MustCompile(`(?i)output`),
	regexp.MustCompile(`(?i)data`),
	regexp.MustCompile(`(?i)storage`),
	regexp.MustCompile(`(?i)cache`),
	regexp.MustCompile(`(?i)temp`),
	regexp.MustCompile(`(?i)tmp`),
}

// SkipDirNames returns the skip set as a sorted-free slice copy, for
// callers that want to display the configured exclusions.
func SkipDirNames() []string {
	names := make([]string, 0, len(skipDirs))
	for name := range skipDirs {
		names = append(names, name)
	}
	return names
}
