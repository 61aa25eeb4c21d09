package scanner

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mwinther/protokoll/internal/filelock"
)

// Registry is the persisted ordered set of user-supplied custom log
// directories, stored as a JSON list. A missing or corrupt file degrades to
// an empty registry. Writes replace the whole file; concurrent writers are
// last-writer-wins by design.
type Registry struct {
	path string
}

// NewRegistry creates a registry backed by the given file path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the backing file path.
func (r *Registry) Path() string {
	return r.path
}

// List returns the registered directories. Load failures degrade to an
// empty list; the error is returned for logging but callers may ignore it.
func (r *Registry) List() ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return []string{}, fmt.Errorf("failed to read registry: %w", err)
	}

	var dirs []string
	if err := json.Unmarshal(data, &dirs); err != nil {
		return []string{}, fmt.Errorf("failed to parse registry: %w", err)
	}
	return dirs, nil
}

// Add registers a directory. The path must exist, be a directory, and not
// already be registered.
func (r *Registry) Add(directory string) error {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", directory)
		}
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", directory)
	}

	dirs, _ := r.List()
	for _, existing := range dirs {
		if existing == directory {
			return fmt.Errorf("directory already registered: %s", directory)
		}
	}

	return r.save(append(dirs, directory))
}

// Remove unregisters a directory. It must be present.
func (r *Registry) Remove(directory string) error {
	dirs, _ := r.List()

	kept := make([]string, 0, len(dirs))
	found := false
	for _, existing := range dirs {
		if existing == directory {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return fmt.Errorf("directory not found in registry: %s", directory)
	}

	return r.save(kept)
}

// save replaces the registry file with the given list, under an exclusive
// lock with an atomic rename.
func (r *Registry) save(dirs []string) error {
	data, err := json.MarshalIndent(dirs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	if err := filelock.LockAndWrite(r.path, data); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}
