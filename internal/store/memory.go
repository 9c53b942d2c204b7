package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// InMemoryStore is a non-durable Store used when no database DSN is
// configured, and as the fake backend in tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile // keyed by identity
	seen     map[string]map[string]bool
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		profiles: make(map[string]models.Profile),
		seen:     make(map[string]map[string]bool),
	}
}

// CreateProfile stores a new profile, assigning it a fresh ID.
func (s *InMemoryStore) CreateProfile(ctx context.Context, profile models.Profile) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[profile.Identity]; exists {
		return "", fmt.Errorf("profile already exists for identity %s", profile.Identity)
	}

	profile.ID = uuid.NewString()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	s.profiles[profile.Identity] = profile

	slog.Debug("InMemoryStore CreateProfile succeeded", "identity", profile.Identity, "profileID", profile.ID)
	return profile.ID, nil
}

// FetchProfile returns the profile for an identity, or (nil, nil) if absent.
func (s *InMemoryStore) FetchProfile(ctx context.Context, identity string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[identity]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

// DeleteProfile removes the profile and seen-alert set for an identity.
func (s *InMemoryStore) DeleteProfile(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, identity)
	delete(s.seen, identity)
	slog.Debug("InMemoryStore DeleteProfile succeeded", "identity", identity)
	return nil
}

// HasSeenAlert reports whether the alert was already delivered to the identity.
func (s *InMemoryStore) HasSeenAlert(ctx context.Context, identity, alertID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen[identity][alertID], nil
}

// MarkAlertSeen records the alert as delivered to the identity.
func (s *InMemoryStore) MarkAlertSeen(ctx context.Context, identity, alertID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[identity] == nil {
		s.seen[identity] = make(map[string]bool)
	}
	s.seen[identity][alertID] = true
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
