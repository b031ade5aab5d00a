package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/frudas24/nanoremote/internal/logging"
)

// Manager creates sessions from a shared dependency template and tracks the
// live ones. Sessions do not share frames or state.
type Manager struct {
	mu       sync.Mutex
	template Deps
	log      *slog.Logger
	sessions map[string]*Session
}

// NewManager returns a manager cloning template for every new session. The
// template Sender is ignored.
func NewManager(template Deps) *Manager {
	log := template.Logger
	if log == nil {
		log = logging.L("session")
	}
	template.Logger = nil
	template.Sender = nil
	return &Manager{template: template, log: log, sessions: make(map[string]*Session)}
}

// Open creates, registers and opens a session for a new connection.
func (m *Manager) Open(remote string, sender Sender) (*Session, error) {
	id := uuid.NewString()
	deps := m.template
	deps.Sender = sender
	deps.Logger = logging.WithSession(m.log, id, remote)
	s, err := New(id, deps)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[id] = s
	count := len(m.sessions)
	m.mu.Unlock()
	deps.Logger.Info("session opened", "active", count)
	s.Open()
	return s, nil
}

// Release closes s and forgets it.
func (m *Manager) Release(s *Session) {
	if s == nil {
		return
	}
	s.Close()
	m.mu.Lock()
	delete(m.sessions, s.ID())
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll releases every live session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.Unlock()
	for _, s := range live {
		m.Release(s)
	}
}
