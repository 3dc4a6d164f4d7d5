package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"langpedia/internal/app"
)

// SessionStore is a Redis-aware implementation of SessionRepository.
// Notes:
//   - Sessions themselves stay in a local map; their timers and subscribers only
//     exist in this process.
//   - Redis marks session liveness so operators can see which clients are
//     connected to which instance.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
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
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(clientID), "1", s.ttl).Err()
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
		_ = s.client.Del(context.Background(), s.key(clientID)).Err()
	}
}

func (s *SessionStore) key(clientID string) string {
	return "langpedia:session:" + clientID
}
