package filelock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("writes new file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "new.json")
		if err := AtomicWrite(path, []byte(`["a"]`)); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read back: %v", err)
		}
		if string(data) != `["a"]` {
			t.Errorf("got %q, want %q", data, `["a"]`)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "existing.json")
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := AtomicWrite(path, []byte("new")); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "new" {
			t.Errorf("got %q, want %q", data, "new")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(tmpDir, "a", "b", "deep.json")
		if err := AtomicWrite(path, []byte("x")); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not created: %v", err)
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "clean.json")
		if err := AtomicWrite(path, []byte("x")); err != nil {
			t.Fatal(err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the target file, found %d entries", len(entries))
		}
	})
}

func TestLockAndWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "registry.json")

	if err := LockAndWrite(path, []byte(`[]`)); err != nil {
		t.Fatalf("LockAndWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("got %q, want %q", data, `[]`)
	}
}

func TestTryShared(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "some.log")
	if err := os.WriteFile(path, []byte("line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("acquires when uncontended", func(t *testing.T) {
		lock := New(path)
		acquired, err := lock.TryShared()
		if err != nil {
			t.Fatalf("TryShared failed: %v", err)
		}
		if !acquired {
			t.Error("expected to acquire shared lock on uncontended file")
		}
		if err := lock.Unlock(); err != nil {
			t.Errorf("Unlock failed: %v", err)
		}
	})

	t.Run("shared locks coexist", func(t *testing.T) {
		first := New(path)
		second := New(path)

		ok, err := first.TryShared()
		if err != nil || !ok {
			t.Fatalf("first shared lock: ok=%v err=%v", ok, err)
		}
		defer first.Unlock()

		ok, err = second.TryShared()
		if err != nil || !ok {
			t.Fatalf("second shared lock: ok=%v err=%v", ok, err)
		}
		defer second.Unlock()
	})
}
