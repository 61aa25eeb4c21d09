package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(strings.ToLower(output), "protokoll") {
		t.Errorf("Help text should mention protokoll, got: %s", output)
	}
	if !strings.Contains(output, "log") {
		t.Errorf("Help text should mention logs, got: %s", output)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	if cmd.Use != "protokoll" {
		t.Errorf("Expected Use to be 'protokoll', got '%s'", cmd.Use)
	}

	want := map[string]bool{"find": false, "dirs": false, "files": false, "inspect": false, "view": false}
	for _, sub := range cmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Missing subcommand %q", name)
		}
	}
}

func TestRootCommandSilencesUsage(t *testing.T) {
	cmd := NewRootCommand()
	if !cmd.SilenceUsage {
		t.Error("Root command should silence usage on errors")
	}
}
