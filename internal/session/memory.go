package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// InMemoryStore keeps sessions in a process-local map. This is the default
// backend; sessions do not survive restarts, which the router tolerates.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]models.Session)}
}

// Get returns a copy of the stored session, or (nil, nil) if absent.
// Copies are returned so callers never alias the stored scratch map.
func (s *InMemoryStore) Get(ctx context.Context, identity string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[identity]
	if !ok {
		return nil, nil
	}
	copied := stored.CloneScratch()
	return &copied, nil
}

// Put stores a total replacement session for the identity.
func (s *InMemoryStore) Put(ctx context.Context, identity string, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[identity] = session.CloneScratch()
	slog.Debug("InMemorySessionStore Put succeeded", "identity", identity, "state", session.State)
	return nil
}

// Delete removes the session for the identity.
func (s *InMemoryStore) Delete(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, identity)
	slog.Debug("InMemorySessionStore Delete succeeded", "identity", identity)
	return nil
}
