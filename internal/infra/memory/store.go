package memory

import (
	"context"
	"sync"

	"langpedia/internal/app"
)

// Store is an in-memory app.Store, the stand-in for browser storage in tests and
// single-process runs.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// StoreProvider keeps one Store per client for the life of the process.
type StoreProvider struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewStoreProvider() *StoreProvider {
	return &StoreProvider{stores: make(map[string]*Store)}
}

func (p *StoreProvider) StoreFor(clientID string) app.Store {
	p.mu.Lock()
	defer p.mu.Unlock()
	store, ok := p.stores[clientID]
	if !ok {
		store = NewStore()
		p.stores[clientID] = store
	}
	return store
}
