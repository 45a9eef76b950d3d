package storage

import (
	"sync"

	"github.com/openmuseum/curator/internal/session"
)

// SessionStore keeps the live session machines for the HTTP surface,
// keyed by session ID.
type SessionStore struct {
	sessions map[string]*session.Machine
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session.Machine),
	}
}

func (s *SessionStore) Get(sessionID string) (*session.Machine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	machine, exists := s.sessions[sessionID]
	return machine, exists
}

func (s *SessionStore) Set(sessionID string, machine *session.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = machine
}

// IDs returns every stored session ID.
func (s *SessionStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
