package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frudas24/nanoremote/internal/logging"
)

// TestFileExists verifies files are distinguished from directories.
func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if fileExists(path) {
		t.Fatalf("expected missing file")
	}
	if err := os.WriteFile(path, []byte("A=1\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !fileExists(path) || fileExists(dir) {
		t.Fatalf("expected file only")
	}
}

// TestLogListenStatus verifies wildcard hosts are shown as localhost.
func TestLogListenStatus(t *testing.T) {
	var buf bytes.Buffer
	logging.Init("text", "info", &buf)
	t.Cleanup(func() { logging.Init("text", "info", nil) })

	logListenStatus(logging.L("main"), "0.0.0.0:3000")
	if !strings.Contains(buf.String(), "http://localhost:3000") {
		t.Fatalf("expected local url, got %q", buf.String())
	}
}

// TestVersionCommand verifies the version subcommand output.
func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "NanoRemote v"+version) {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
