package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwinther/protokoll/internal/config"
)

func writeLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestViewPlainFile(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())
	path := writeLog(t, "app.log", "first line\nsecond line\n")

	out, err := execute(t, "view", path)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if !strings.Contains(out, "first line") || !strings.Contains(out, "second line") {
		t.Errorf("content missing from output:\n%s", out)
	}
}

func TestViewStripsEscapesForNonTerminal(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())
	path := writeLog(t, "color.log", "\x1b[31merror\x1b[0m done\n")

	out, err := execute(t, "view", path)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("escape sequences leaked into non-terminal output: %q", out)
	}
	if !strings.Contains(out, "error done") {
		t.Errorf("visible text mangled: %q", out)
	}
}

func TestViewHTML(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())
	path := writeLog(t, "color.log", "\x1b[31merror\x1b[0m done\n")

	out, err := execute(t, "view", path, "--html")
	if err != nil {
		t.Fatalf("view --html failed: %v", err)
	}
	if !strings.Contains(out, `<span style="color:`) {
		t.Errorf("no HTML span in output: %q", out)
	}
}

func TestViewLines(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())
	path := writeLog(t, "big.log", strings.Repeat("row\n", 50))

	out, err := execute(t, "view", path, "--lines", "5")
	if err != nil {
		t.Fatalf("view --lines failed: %v", err)
	}
	if got := strings.Count(out, "row"); got != 5 {
		t.Errorf("expected 5 rows, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "Showing 5 of") {
		t.Errorf("truncation warning missing:\n%s", out)
	}
}

func TestViewMaxSizeRefusal(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())
	path := writeLog(t, "big.log", strings.Repeat("x", 2048))

	_, err := execute(t, "view", path, "--max-size", "1KB")
	if err == nil {
		t.Fatal("expected size refusal")
	}
	if !strings.Contains(err.Error(), "Size exceeds limit") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestViewRejectsBadMaxSize(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())
	path := writeLog(t, "app.log", "hi\n")

	if _, err := execute(t, "view", path, "--max-size", "lots"); err == nil {
		t.Error("expected parse error for bad --max-size")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1024", 1024, true},
		{"1KB", 1024, true},
		{"10MB", 10 * 1024 * 1024, true},
		{"2GB", 2 * 1024 * 1024 * 1024, true},
		{"512B", 512, true},
		{"0", 0, false},
		{"-5MB", 0, false},
		{"huge", 0, false},
	}
	for _, tc := range tests {
		got, err := parseSize(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("parseSize(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("parseSize(%q) should fail", tc.in)
		}
	}
}
