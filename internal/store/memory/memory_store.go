// Package memory provides the in-process session store. Batch results live
// here for the lifetime of the process only; nothing touches durable storage.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"champdoc/internal/domain"
)

// defaultCap bounds how many finished sessions are retained. The oldest
// session is evicted when the cap is reached.
const defaultCap = 32

// SessionStore implements port.SessionStore backed by a map.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
	order    []uuid.UUID
	cap      int
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*domain.Session),
		cap:      defaultCap,
	}
}

// Save stores a session, evicting the oldest one when the cap is exceeded.
func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; !exists {
		s.order = append(s.order, session.ID)
	}
	s.sessions[session.ID] = session

	for len(s.order) > s.cap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, oldest)
	}
	return nil
}

// Get returns a stored session or domain.ErrSessionNotFound.
func (s *SessionStore) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}
