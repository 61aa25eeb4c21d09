package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwinther/protokoll/internal/config"
)

func TestInspectTextOutput(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())

	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{path, "Log file:   true", "Binary:     false", "utf-8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectJSONOutput(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())

	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := executeSplit(t, "inspect", path, "--json")
	if err != nil {
		t.Fatalf("inspect --json failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded["is_log_file"] != true {
		t.Errorf("is_log_file = %v", decoded["is_log_file"])
	}
}

func TestInspectMissingFile(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())

	out, err := execute(t, "inspect", filepath.Join(t.TempDir(), "ghost.log"))
	if err != nil {
		t.Fatalf("inspect should not fail for missing files: %v", err)
	}
	if !strings.Contains(out, "File does not exist") {
		t.Errorf("missing-file error not surfaced:\n%s", out)
	}
}
