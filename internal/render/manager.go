package render

import (
	"sync"

	"cardrender/internal/pkg/errors"
	"cardrender/internal/pkg/ids"
)

// DefaultMaxSessions bounds how many orchestrator sessions the API keeps.
const DefaultMaxSessions = 100

// Manager tracks orchestrator sessions by ID for the HTTP API. Terminal
// sessions are pruned when room is needed for new ones.
type Manager struct {
	newOrchestrator func() *Orchestrator
	max             int

	mu       sync.Mutex
	sessions map[string]*Orchestrator
}

func NewManager(newOrchestrator func() *Orchestrator, maxSessions int) *Manager {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Manager{
		newOrchestrator: newOrchestrator,
		max:             maxSessions,
		sessions:        make(map[string]*Orchestrator),
	}
}

// Create registers a fresh orchestrator session and returns its ID.
func (m *Manager) Create() (string, *Orchestrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.max {
		m.pruneTerminalLocked()
	}
	if len(m.sessions) >= m.max {
		return "", nil, errors.Unavailable("render sessions")
	}

	id := ids.NewSessionID()
	o := m.newOrchestrator()
	m.sessions[id] = o
	return id, o, nil
}

// Get returns the session for id.
func (m *Manager) Get(id string) (*Orchestrator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.sessions[id]
	return o, ok
}

// Remove resets and forgets the session for id; absent IDs are a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	o, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		o.Reset()
	}
}

// Count returns the number of tracked sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) pruneTerminalLocked() {
	for id, o := range m.sessions {
		if Terminal(o.Status()) {
			delete(m.sessions, id)
		}
	}
}
