package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// TestPreInitLoggerUsesConfiguredHandler verifies loggers created before Init write to the new handler.
func TestPreInitLoggerUsesConfiguredHandler(t *testing.T) {
	logger := L("transport")

	var buf bytes.Buffer
	Init("text", "info", &buf)

	logger.Info("connected", "addr", "0.0.0.0:3000")

	out := buf.String()
	if !strings.Contains(out, "msg=connected") {
		t.Fatalf("expected connected message, got: %s", out)
	}
	if !strings.Contains(out, "component=transport") {
		t.Fatalf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "addr=0.0.0.0:3000") {
		t.Fatalf("expected addr field, got: %s", out)
	}
}

// TestPreInitLoggerRespectsConfiguredLevel verifies level filtering applies after Init.
func TestPreInitLoggerRespectsConfiguredLevel(t *testing.T) {
	logger := L("stream")

	var buf bytes.Buffer
	Init("text", "warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info log should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn log should be emitted: %s", out)
	}
}

// TestWithSessionAddsFields verifies session loggers carry id and remote address.
func TestWithSessionAddsFields(t *testing.T) {
	var buf bytes.Buffer
	Init("json", "debug", &buf)

	WithSession(L("session"), "abc", "10.0.0.2:5000").Debug("dispatch", Err(errors.New("boom")))

	out := buf.String()
	for _, want := range []string{`"session":"abc"`, `"remote":"10.0.0.2:5000"`, `"error":"boom"`, `"component":"session"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output, got: %s", want, out)
		}
	}
}

// TestParseLevel verifies level names and the info fallback.
func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != slog.LevelDebug {
		t.Fatalf("expected debug level")
	}
	if ParseLevel("warning") != slog.LevelWarn {
		t.Fatalf("expected warn level")
	}
	if ParseLevel("nonsense") != slog.LevelInfo {
		t.Fatalf("expected info fallback")
	}
}
