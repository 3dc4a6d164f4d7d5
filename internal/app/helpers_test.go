package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"langpedia/internal/catalog"
	"langpedia/internal/domain"
)

// mapStore is an in-process Store with optional failure injection.
type mapStore struct {
	mu      sync.Mutex
	values  map[string]string
	failGet bool
	failSet bool
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string]string)}
}

var errStoreDown = errors.New("store down")

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errStoreDown
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStoreDown
	}
	s.values[key] = value
	return nil
}

func (s *mapStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStoreDown
	}
	delete(s.values, key)
	return nil
}

func (s *mapStore) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// fakeClock fires timers only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves the clock and runs every due timer in deadline order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// pending counts timers that are neither stopped nor fired.
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.Default()
}

func smallCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]domain.CatalogItem{
		{ID: "python", Name: "Python", Type: "Interpreted", Usage: "Web, Data", Traits: "Readable, Dynamic", Year: "1991", Author: "Guido van Rossum"},
		{ID: "go", Name: "Go", Type: "Compiled", Usage: "Cloud", Traits: "Simple", Year: "2009", Author: "Google"},
		{ID: "rust", Name: "Rust", Type: "Compiled", Usage: "Systems", Traits: "Safe", Year: "2010", Author: "Graydon Hoare"},
		{ID: "c", Name: "C", Type: "Compiled", Usage: "Embedded", Traits: "Portable", Year: "1972", Author: "Dennis Ritchie"},
		{ID: "sql", Name: "SQL", Type: "Declarative", Usage: "Databases"},
	})
	require.NoError(t, err)
	return c
}

type sessionFixture struct {
	session *Session
	store   *mapStore
	clock   *fakeClock
}

func newFixture(t *testing.T, c *catalog.Catalog, store *mapStore, delay time.Duration) sessionFixture {
	t.Helper()
	if store == nil {
		store = newMapStore()
	}
	clock := newFakeClock()
	state := NewState(context.Background(), StateDeps{Catalog: c, Store: store})
	session := NewSession("client-1", state, SessionOptions{
		FeedbackDelay: delay,
		Clock:         clock,
	})
	return sessionFixture{session: session, store: store, clock: clock}
}

func (f sessionFixture) dispatch(t *testing.T, intent domain.Intent) domain.ViewState {
	t.Helper()
	view, err := f.session.Dispatch(context.Background(), intent)
	require.NoError(t, err, "intent %s", intent.Kind)
	return view
}

func (f sessionFixture) snapshot(t *testing.T) domain.ViewState {
	t.Helper()
	view, err := f.session.Snapshot()
	require.NoError(t, err)
	return view
}
