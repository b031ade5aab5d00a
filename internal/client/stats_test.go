package client

import (
	"math"
	"testing"
	"time"
)

// TestStats_CountsGaps verifies missing sequence numbers are counted as dropped.
func TestStats_CountsGaps(t *testing.T) {
	s := NewStats()
	now := time.Now()
	for i, seq := range []uint64{1, 2, 4, 8} {
		s.Frame(seq, now.Add(time.Duration(i)*100*time.Millisecond))
	}
	snap := s.Snapshot()
	if snap.Frames != 4 || snap.Dropped != 4 {
		t.Fatalf("expected 4 frames and 4 dropped, got %+v", snap)
	}
}

// TestStats_RestartedSequence verifies a lower seq starts over without drops.
func TestStats_RestartedSequence(t *testing.T) {
	s := NewStats()
	now := time.Now()
	s.Frame(10, now)
	s.Frame(1, now.Add(time.Millisecond))
	s.Frame(2, now.Add(2*time.Millisecond))
	if d := s.Snapshot().Dropped; d != 0 {
		t.Fatalf("expected no drops after restart, got %d", d)
	}
}

// TestStats_ZeroSeqIgnoredForGaps verifies frames without seq never count as dropped.
func TestStats_ZeroSeqIgnoredForGaps(t *testing.T) {
	s := NewStats()
	now := time.Now()
	s.Frame(0, now)
	s.Frame(0, now.Add(time.Millisecond))
	if snap := s.Snapshot(); snap.Dropped != 0 || snap.Frames != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

// TestStats_FPS verifies a steady cadence converges on its rate.
func TestStats_FPS(t *testing.T) {
	s := NewStats()
	now := time.Now()
	for i := 0; i < 30; i++ {
		s.Frame(uint64(i+1), now.Add(time.Duration(i)*50*time.Millisecond))
	}
	if fps := s.Snapshot().FPS; math.Abs(fps-20) > 0.01 {
		t.Fatalf("expected 20 fps, got %v", fps)
	}
	s.Reset()
	if fps := s.Snapshot().FPS; fps != 0 {
		t.Fatalf("expected fps cleared by reset, got %v", fps)
	}
}
