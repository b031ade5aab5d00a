package testutil

import (
	"sync"
	"time"
)

// Frame is one delivered frame.
type Frame struct {
	JPEG []byte
	Seq  uint64
}

// FakeSink records delivered frames.
type FakeSink struct {
	mu     sync.Mutex
	frames []Frame
	notify chan struct{}
}

// NewFakeSink returns an empty sink.
func NewFakeSink() *FakeSink {
	return &FakeSink{notify: make(chan struct{}, 1)}
}

// DeliverFrame records a frame.
func (s *FakeSink) DeliverFrame(jpg []byte, seq uint64) error {
	s.mu.Lock()
	s.frames = append(s.frames, Frame{JPEG: append([]byte(nil), jpg...), Seq: seq})
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
	return nil
}

// Frames returns a copy of the delivered frames.
func (s *FakeSink) Frames() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Frame(nil), s.frames...)
}

// WaitFrames blocks until at least n frames arrived or the timeout passes.
func (s *FakeSink) WaitFrames(n int, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		if len(s.Frames()) >= n {
			return true
		}
		select {
		case <-s.notify:
		case <-deadline.C:
			return len(s.Frames()) >= n
		}
	}
}
