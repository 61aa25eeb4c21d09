package listing

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("entry\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestListFiltersToLogFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "app.log"), now)
	touch(t, filepath.Join(dir, "notes.md"), now)
	touch(t, filepath.Join(dir, "archive.gz"), now)

	result, err := List(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", result.Entries)
	}
	for _, e := range result.Entries {
		if filepath.Base(e.Path) == "notes.md" {
			t.Errorf("non-log file listed: %s", e.Path)
		}
	}
}

func TestListIncludeAll(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "notes.md"), time.Now())

	result, err := List(dir, Options{IncludeAll: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %v", result.Entries)
	}
}

func TestListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	touch(t, filepath.Join(dir, "old.log"), base)
	touch(t, filepath.Join(dir, "new.log"), base.Add(30*time.Minute))
	touch(t, filepath.Join(dir, "mid.log"), base.Add(10*time.Minute))

	result, err := List(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range result.Entries {
		names = append(names, filepath.Base(e.Path))
	}
	want := []string{"new.log", "mid.log", "old.log"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestListRecursionAndDepth(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "top.log"), now)
	touch(t, filepath.Join(dir, "sub", "deep.log"), now)
	touch(t, filepath.Join(dir, "sub", "lower", "deepest.log"), now)

	flat, err := List(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(flat.Entries) != 1 {
		t.Errorf("non-recursive listing found %d entries", len(flat.Entries))
	}

	all, err := List(dir, Options{Recursive: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Entries) != 3 {
		t.Errorf("recursive listing found %d entries", len(all.Entries))
	}

	capped, err := List(dir, Options{Recursive: true, MaxDepth: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(capped.Entries) != 1 {
		t.Errorf("depth-capped listing found %d entries", len(capped.Entries))
	}
}

func TestListSkipsHiddenAndExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "keep.log"), now)
	touch(t, filepath.Join(dir, ".hidden", "secret.log"), now)
	touch(t, filepath.Join(dir, "node_modules", "dep.log"), now)

	result, err := List(dir, Options{Recursive: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Entries) != 1 || filepath.Base(result.Entries[0].Path) != "keep.log" {
		t.Errorf("skip rules not applied: %v", result.Entries)
	}
}

func TestListPattern(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "error-2026.log"), now)
	touch(t, filepath.Join(dir, "access.log"), now)

	result, err := List(dir, Options{Pattern: `^error-`})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Entries) != 1 || filepath.Base(result.Entries[0].Path) != "error-2026.log" {
		t.Errorf("pattern filter failed: %v", result.Entries)
	}

	if _, err := List(dir, Options{Pattern: `[`}); err == nil {
		t.Error("expected invalid pattern error")
	}
}

func TestListRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.log")
	touch(t, file, time.Now())

	if _, err := List(file, Options{}); err == nil {
		t.Error("expected error listing a file")
	}
	if _, err := List(filepath.Join(dir, "missing"), Options{}); err == nil {
		t.Error("expected error listing a missing directory")
	}
}
