package testutil

import (
	"sync"
	"time"

	"github.com/frudas24/nanoremote/internal/protocol"
)

// FakeSender records outbound messages in place of a connection.
type FakeSender struct {
	mu     sync.Mutex
	msgs   []protocol.Message
	err    error
	notify chan struct{}
}

// NewFakeSender returns an empty sender.
func NewFakeSender() *FakeSender {
	return &FakeSender{notify: make(chan struct{}, 1)}
}

// FailWith makes subsequent sends fail with err.
func (s *FakeSender) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Send records msg.
func (s *FakeSender) Send(msg protocol.Message) error {
	s.mu.Lock()
	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		return err
	}
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
	return nil
}

// Messages returns a copy of the recorded messages.
func (s *FakeSender) Messages() []protocol.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]protocol.Message(nil), s.msgs...)
}

// OfType returns recorded messages with the given type.
func (s *FakeSender) OfType(msgType string) []protocol.Message {
	var out []protocol.Message
	for _, m := range s.Messages() {
		if m.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}

// WaitType blocks until n messages of msgType arrived or the timeout passes.
func (s *FakeSender) WaitType(msgType string, n int, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		if len(s.OfType(msgType)) >= n {
			return true
		}
		select {
		case <-s.notify:
		case <-deadline.C:
			return len(s.OfType(msgType)) >= n
		}
	}
}
