package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// Redis key prefix for session records.
const sessionKeyPrefix = "session:"

// DefaultSessionTTL bounds how long an abandoned session lingers in Redis.
const DefaultSessionTTL = 24 * time.Hour

// RedisStore is a Redis-backed session store for deployments that need
// sessions shared across instances or surviving restarts.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL overrides the session expiry applied on every Put.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore creates a session store from a Redis URL
// (e.g. redis://localhost:6379/0) and verifies the connection.
func NewRedisStore(url string, opts ...RedisOption) (*RedisStore, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	store := &RedisStore{client: client, ttl: DefaultSessionTTL}
	for _, opt := range opts {
		opt(store)
	}
	slog.Info("Redis session store connected", "ttl", store.ttl)
	return store, nil
}

// Get returns the stored session, or (nil, nil) when the key is absent or expired.
func (s *RedisStore) Get(ctx context.Context, identity string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+identity).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		slog.Error("RedisSessionStore Get failed", "error", err, "identity", identity)
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		slog.Error("RedisSessionStore Get unmarshal failed", "error", err, "identity", identity)
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Put stores a total replacement session with the configured TTL.
func (s *RedisStore) Put(ctx context.Context, identity string, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+identity, raw, s.ttl).Err(); err != nil {
		slog.Error("RedisSessionStore Put failed", "error", err, "identity", identity)
		return fmt.Errorf("redis set session: %w", err)
	}
	slog.Debug("RedisSessionStore Put succeeded", "identity", identity, "state", session.State)
	return nil
}

// Delete removes the session for the identity.
func (s *RedisStore) Delete(ctx context.Context, identity string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+identity).Err(); err != nil {
		slog.Error("RedisSessionStore Delete failed", "error", err, "identity", identity)
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
