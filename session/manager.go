package session

import "sync"

// Manager keys sessions by identifier so several logical training sessions
// can coexist. Access to the map is serialized here; each session then
// serializes its own control flags, so a pause or stop request for one
// session never races the drive loop of another.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     []Option
}

// NewManager creates an empty Manager. The options are applied to every
// session it creates.
func NewManager(opts ...Option) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Get returns the session for id, if present.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetOrCreate returns the session for id, creating an idle one if needed.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := New(m.opts...)
	m.sessions[id] = s
	return s
}

// Remove stops the session for id, if any, and drops it from the map.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.Stop()
		delete(m.sessions, id)
	}
}

// Len returns the number of managed sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
