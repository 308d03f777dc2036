// Package sessions hosts in-progress tournaments between HTTP requests.
package sessions

import (
	"errors"
	"sync"
	"time"

	"Pickme/api/bracket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("sessions: tournament not found")

type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEngineOptions are applied to every engine the store creates.
func WithEngineOptions(opts ...bracket.Option) Option {
	return func(s *Store) { s.engineOpts = append(s.engineOpts, opts...) }
}

// WithSizeObserver is called with the session count after every change,
// while the store is locked. fn must not call back into the store.
func WithSizeObserver(fn func(n int)) Option {
	return func(s *Store) { s.onResize = fn }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	ttl        time.Duration
	now        func() time.Time
	engineOpts []bracket.Option
	onResize   func(n int)
	logger     *zap.Logger
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a tournament over items and keeps it under a fresh id.
func (s *Store) Create(catalogID uint, items []bracket.Item) (*Session, error) {
	engine := bracket.NewEngine(s.engineOpts...)
	if err := engine.Start(items); err != nil {
		return nil, err
	}

	now := s.now()
	session := &Session{
		ID:          uuid.New(),
		CatalogID:   catalogID,
		Contestants: len(items),
		CreatedAt:   now,
		engine:      engine,
		touched:     now,
		now:         s.now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.resized(len(s.sessions))
	s.mu.Unlock()

	return session, nil
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Delete abandons a tournament.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	s.resized(len(s.sessions))
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle drops sessions untouched for longer than the store TTL and
// reports how many were removed.
func (s *Store) EvictIdle() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	evicted := 0
	for id, session := range s.sessions {
		if session.lastTouched().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	n := len(s.sessions)
	if evicted > 0 {
		s.resized(n)
	}
	s.mu.Unlock()

	if evicted > 0 {
		s.logger.Info("evicted idle tournaments", zap.Int("count", evicted), zap.Int("remaining", n))
	}
	return evicted
}

// resized reports the session count. Callers hold s.mu so reports arrive in
// the order the map changed.
func (s *Store) resized(n int) {
	if s.onResize != nil {
		s.onResize(n)
	}
}
