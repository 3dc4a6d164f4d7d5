package memory

import (
	"sync"

	"langpedia/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(clientID string, create func() *app.Session) (*app.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[clientID]; ok {
		return session, false
	}
	session := create()
	s.sessions[clientID] = session
	return session, true
}

func (s *SessionStore) Get(clientID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[clientID]
	return session, ok
}

func (s *SessionStore) DeleteIfIdle(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[clientID]
	if !ok {
		return
	}
	if session.IsIdle() {
		session.Close()
		delete(s.sessions, clientID)
	}
}
