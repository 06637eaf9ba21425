package worker

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Manager holds multiple named sessions. Hosts that only ever need one
// worker can use Session directly; nothing in a session is global, so
// supporting several workspaces side by side is just a map.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a new session under name. An empty name gets a
// generated identifier. The session is not started; callers invoke Start
// on the returned session.
func (m *Manager) Create(name string, opts ...Option) (*Session, error) {
	if name == "" {
		name = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("manager is closed")
	}
	if _, exists := m.sessions[name]; exists {
		return nil, fmt.Errorf("session %q already exists", name)
	}

	s := NewSession(opts...)
	m.sessions[name] = s
	return s, nil
}

// Get retrieves a session by name.
func (m *Manager) Get(name string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[name]
	return s, ok
}

// Names returns all session names, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.sessions))
	for name := range m.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close disposes and removes the named session.
func (m *Manager) Close(name string) error {
	m.mu.Lock()
	s, ok := m.sessions[name]
	delete(m.sessions, name)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("session not found: %s", name)
	}
	s.Dispose()
	return nil
}

// CloseAll disposes every session and marks the manager closed. Further
// Create calls fail; Close and Get keep working on the empty map.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.closed = true
	m.mu.Unlock()

	for _, s := range sessions {
		s.Dispose()
	}
}
