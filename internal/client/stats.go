package client

import (
	"sync"
	"time"
)

// fpsSmoothing weights the newest frame interval in the moving average.
const fpsSmoothing = 0.2

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Frames  uint64
	Dropped uint64
	FPS     float64
}

// Stats counts frames, derives a smoothed FPS from arrival times and counts
// frames missing from the sequence.
type Stats struct {
	mu      sync.Mutex
	frames  uint64
	dropped uint64
	lastSeq uint64
	lastAt  time.Time
	fps     float64
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{}
}

// Frame records a frame with sequence number seq arriving at at. A zero seq
// is counted but not checked for gaps. A seq at or below the previous one
// starts a new sequence.
func (s *Stats) Frame(seq uint64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	if seq > 0 {
		if s.lastSeq > 0 && seq > s.lastSeq+1 {
			s.dropped += seq - s.lastSeq - 1
		}
		s.lastSeq = seq
	}
	if !s.lastAt.IsZero() {
		if d := at.Sub(s.lastAt); d > 0 {
			inst := float64(time.Second) / float64(d)
			if s.fps == 0 {
				s.fps = inst
			} else {
				s.fps += fpsSmoothing * (inst - s.fps)
			}
		}
	}
	s.lastAt = at
}

// Reset clears the sequence and timing state for a new connection. Totals
// are kept.
func (s *Stats) Reset() {
	s.mu.Lock()
	s.lastSeq = 0
	s.lastAt = time.Time{}
	s.fps = 0
	s.mu.Unlock()
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{Frames: s.frames, Dropped: s.dropped, FPS: s.fps}
}
