package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoad_Defaults verifies the built-in defaults when nothing is configured.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NANOREMOTE_DATA_DIR", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:3000" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.FrameIntervalMs != 66 || cfg.MaxFrameWidth != 1280 || cfg.JPEGQuality != 60 {
		t.Fatalf("unexpected stream defaults: %+v", cfg)
	}
	if cfg.WindowTitle != "NanoVNA" {
		t.Fatalf("expected NanoVNA window title, got %q", cfg.WindowTitle)
	}
	if cfg.MoveRateLimit != 0 {
		t.Fatalf("expected move rate limit disabled by default, got %d", cfg.MoveRateLimit)
	}
	if cfg.FrameInterval().Milliseconds() != 66 {
		t.Fatalf("expected 66ms interval, got %v", cfg.FrameInterval())
	}
}

// TestLoad_YAMLFileAndEnvOverride verifies a YAML file is read and env wins over it.
func TestLoad_YAMLFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NANOREMOTE_DATA_DIR", dir)
	path := filepath.Join(dir, "custom.yaml")
	body := "listen_addr: 127.0.0.1:4000\njpeg_quality: 80\nwindow_title: Scope\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NANOREMOTE_JPEG_QUALITY", "75")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:4000" {
		t.Fatalf("expected listen addr from file, got %q", cfg.ListenAddr)
	}
	if cfg.JPEGQuality != 75 {
		t.Fatalf("expected env override 75, got %d", cfg.JPEGQuality)
	}
	if cfg.WindowTitle != "Scope" {
		t.Fatalf("expected window title from file, got %q", cfg.WindowTitle)
	}
	if cfg.ConfigFile != path {
		t.Fatalf("expected config file %q, got %q", path, cfg.ConfigFile)
	}
}

// TestLoad_EnvFile verifies values from data/.env are applied.
func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NANOREMOTE_DATA_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("# comment\nexport NANOREMOTE_MONITOR_INDEX=2\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("NANOREMOTE_MONITOR_INDEX") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MonitorIndex != 2 {
		t.Fatalf("expected monitor index 2 from .env, got %d", cfg.MonitorIndex)
	}
}

// TestLoad_InvalidQuality verifies validation errors name the key.
func TestLoad_InvalidQuality(t *testing.T) {
	t.Setenv("NANOREMOTE_DATA_DIR", t.TempDir())
	t.Setenv("NANOREMOTE_JPEG_QUALITY", "0")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "jpeg_quality") {
		t.Fatalf("expected jpeg_quality error, got %v", err)
	}
}

// TestLoad_MissingExplicitFile verifies an explicit config path must exist.
func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("NANOREMOTE_DATA_DIR", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

// TestParseEnvLine verifies comments, export prefixes and quoting.
func TestParseEnvLine(t *testing.T) {
	if _, _, ok := parseEnvLine("# note"); ok {
		t.Fatalf("expected comment to be skipped")
	}
	key, value, ok := parseEnvLine(`export KEY = "value"`)
	if !ok || key != "KEY" || value != "value" {
		t.Fatalf("unexpected parse: %q=%q ok=%v", key, value, ok)
	}
	if _, _, ok := parseEnvLine("novalue"); ok {
		t.Fatalf("expected line without '=' to be skipped")
	}
}

// TestYAML verifies the effective config renders with snake_case keys.
func TestYAML(t *testing.T) {
	out, err := Default().YAML()
	if err != nil {
		t.Fatalf("yaml failed: %v", err)
	}
	if !strings.Contains(string(out), "frame_interval_ms: 66") {
		t.Fatalf("unexpected yaml: %s", out)
	}
}
