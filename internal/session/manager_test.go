package session

import (
	"testing"
	"time"

	"github.com/frudas24/nanoremote/internal/encoder"
	"github.com/frudas24/nanoremote/internal/testutil"
)

// newTestManager returns a manager over fakes.
func newTestManager() *Manager {
	return NewManager(Deps{
		Source:   testutil.NewFakeSource(32, 32),
		Encoder:  encoder.NewJPEG(0, 0),
		Interval: 10 * time.Millisecond,
		Injector: testutil.NewFakeInjector(100, 100),
	})
}

// TestManager_OpenRelease verifies sessions are tracked until released.
func TestManager_OpenRelease(t *testing.T) {
	m := newTestManager()
	a, err := m.Open("10.0.0.2:1", testutil.NewFakeSender())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, err := m.Open("10.0.0.3:1", testutil.NewFakeSender())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if a.ID() == b.ID() || a.ID() == "" {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID(), b.ID())
	}
	if m.Count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", m.Count())
	}
	m.Release(a)
	m.Release(a)
	if m.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Count())
	}
	m.CloseAll()
	if m.Count() != 0 {
		t.Fatalf("expected 0 sessions, got %d", m.Count())
	}
}

// TestManager_SessionsIndependent verifies one session stopping leaves the other streaming.
func TestManager_SessionsIndependent(t *testing.T) {
	m := newTestManager()
	t.Cleanup(m.CloseAll)
	a, _ := m.Open("a", testutil.NewFakeSender())
	b, _ := m.Open("b", testutil.NewFakeSender())
	a.HandleRaw([]byte(`{"type":"start"}`))
	b.HandleRaw([]byte(`{"type":"start"}`))
	a.HandleRaw([]byte(`{"type":"stop"}`))
	if a.Streaming() || !b.Streaming() {
		t.Fatalf("expected independent streaming flags, got a=%v b=%v", a.Streaming(), b.Streaming())
	}
}

// TestManager_OpenRequiresSender verifies a nil sender is rejected.
func TestManager_OpenRequiresSender(t *testing.T) {
	m := newTestManager()
	if _, err := m.Open("x", nil); err == nil {
		t.Fatalf("expected error for nil sender")
	}
	if m.Count() != 0 {
		t.Fatalf("expected no sessions, got %d", m.Count())
	}
}
