package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/nanoremote/internal/config"
	"github.com/frudas24/nanoremote/internal/encoder"
	"github.com/frudas24/nanoremote/internal/monitor"
	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/frudas24/nanoremote/internal/testutil"
)

// newTestServer starts the full route set over fakes.
func newTestServer(t *testing.T, cfg config.Config, monitors func() ([]monitor.Monitor, error)) (*httptest.Server, *App) {
	t.Helper()
	cfg.StaticDir = ""
	cfg.FrameIntervalMs = 10
	a, err := New(cfg, Deps{
		Source:   testutil.NewFakeSource(64, 48),
		Encoder:  encoder.NewJPEG(0, 0),
		Injector: testutil.NewFakeInjector(1920, 1080),
		Locator:  testutil.NewFakeLocator(protocol.Bounds{Width: 10, Height: 10}),
		Monitors: monitors,
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(a.Stop)
	return srv, a
}

// TestNew_RequiresDeps verifies missing collaborators are rejected.
func TestNew_RequiresDeps(t *testing.T) {
	if _, err := New(config.Default(), Deps{}); err == nil {
		t.Fatal("expected error without a frame source")
	}
	if _, err := New(config.Default(), Deps{Source: testutil.NewFakeSource(1, 1), Encoder: encoder.NewJPEG(0, 0)}); err == nil {
		t.Fatal("expected error without an injector")
	}
}

// TestStatus_ReportsSessions verifies the status endpoint counts live sessions.
func TestStatus_ReportsSessions(t *testing.T) {
	srv, a := newTestServer(t, config.Default(), nil)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for a.Sessions().Count() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Get(srv.URL + "/api/status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	defer resp.Body.Close()
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Sessions != 1 || status.Version != "test" || status.WindowTitle != "NanoVNA" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if !status.WebRTC {
		t.Fatalf("expected webrtc enabled by default")
	}
}

// TestMonitors_ListsDisplays verifies the monitor endpoint encodes the provider output.
func TestMonitors_ListsDisplays(t *testing.T) {
	list := []monitor.Monitor{{Index: 1, X: 0, Y: 0, W: 1920, H: 1080, Primary: true}}
	srv, _ := newTestServer(t, config.Default(), func() ([]monitor.Monitor, error) { return list, nil })

	resp, err := http.Get(srv.URL + "/api/monitors")
	if err != nil {
		t.Fatalf("get monitors: %v", err)
	}
	defer resp.Body.Close()
	var got []monitor.Monitor
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].W != 1920 {
		t.Fatalf("unexpected monitors: %+v", got)
	}
}

// TestMonitors_Failure verifies provider errors become a 500.
func TestMonitors_Failure(t *testing.T) {
	srv, _ := newTestServer(t, config.Default(), func() ([]monitor.Monitor, error) { return nil, errors.New("no display") })
	resp, err := http.Get(srv.URL + "/api/monitors")
	if err != nil {
		t.Fatalf("get monitors: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

// TestRoutes_StaticAndFavicon verifies embedded assets and the favicon shortcut.
func TestRoutes_StaticAndFavicon(t *testing.T) {
	srv, _ := newTestServer(t, config.Default(), nil)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "NanoRemote") {
		t.Fatalf("expected index page, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/favicon.ico")
	if err != nil {
		t.Fatalf("get favicon: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

// TestRoutes_OptionalTransports verifies disabled transports are not routed.
func TestRoutes_OptionalTransports(t *testing.T) {
	cfg := config.Default()
	cfg.WebRTCEnabled = false
	cfg.MJPEGEnabled = false
	srv, _ := newTestServer(t, cfg, nil)

	resp, err := http.Get(srv.URL + "/mjpeg")
	if err != nil {
		t.Fatalf("get mjpeg: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for disabled preview, got %d", resp.StatusCode)
	}
}
