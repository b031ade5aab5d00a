package transport

import (
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/nanoremote/internal/encoder"
	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/frudas24/nanoremote/internal/session"
	"github.com/frudas24/nanoremote/internal/testutil"
)

// startServer runs the control endpoint over fakes.
func startServer(t *testing.T) (*websocket.Conn, *testutil.FakeInjector, *session.Manager) {
	t.Helper()
	inj := testutil.NewFakeInjector(1920, 1080)
	mgr := session.NewManager(session.Deps{
		Source:   testutil.NewFakeSource(320, 240),
		Encoder:  encoder.NewJPEG(1280, 60),
		Interval: 10 * time.Millisecond,
		Injector: inj,
	})
	srv := httptest.NewServer(NewServer(mgr))
	t.Cleanup(srv.Close)
	t.Cleanup(mgr.CloseAll)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, inj, mgr
}

// send writes one protocol message.
func send(t *testing.T, conn *websocket.Conn, msg protocol.Message) {
	t.Helper()
	data, err := protocol.Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// TestServer_StartStreamsFrames verifies start yields a frame with JPEG data.
func TestServer_StartStreamsFrames(t *testing.T) {
	conn, _, _ := startServer(t)
	send(t, conn, protocol.Start())

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	msg, err := protocol.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != protocol.TypeFrame || msg.Data == "" {
		t.Fatalf("expected frame with data, got %+v", msg.Type)
	}
	jpg, err := base64.StdEncoding.DecodeString(msg.Data)
	if err != nil || len(jpg) < 2 || jpg[0] != 0xFF || jpg[1] != 0xD8 {
		t.Fatalf("expected JPEG payload, err=%v", err)
	}
}

// TestServer_MouseDownMapsToScreen verifies a centered mousedown reaches the injector at mid-screen.
func TestServer_MouseDownMapsToScreen(t *testing.T) {
	conn, inj, _ := startServer(t)
	send(t, conn, protocol.MouseDown(0.5, 0.5, protocol.ButtonLeft))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		calls := inj.Calls()
		if len(calls) >= 2 {
			if calls[0].Name != "MoveAbs" || calls[0].X != 960 || calls[0].Y != 540 {
				t.Fatalf("expected move to (960,540), got %+v", calls[0])
			}
			if calls[1].Name != "ButtonDown" || calls[1].Button != "left" {
				t.Fatalf("expected left button down, got %+v", calls[1])
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for injection, got %+v", inj.Calls())
}

// TestServer_MalformedKeepsConnection verifies garbage input does not close the socket.
func TestServer_MalformedKeepsConnection(t *testing.T) {
	conn, _, _ := startServer(t)
	if err := conn.WriteMessage(websocket.TextMessage, []byte("{oops")); err != nil {
		t.Fatalf("write: %v", err)
	}
	send(t, conn, protocol.Start())
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("expected the connection to stay open, got %v", err)
	}
}

// TestServer_DisconnectReleasesSession verifies the session is torn down on close.
func TestServer_DisconnectReleasesSession(t *testing.T) {
	conn, _, mgr := startServer(t)
	send(t, conn, protocol.Start())

	deadline := time.Now().Add(2 * time.Second)
	for mgr.Count() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	conn.Close()
	for mgr.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if mgr.Count() != 0 {
		t.Fatalf("expected session released, got %d live", mgr.Count())
	}
}
