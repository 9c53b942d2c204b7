// Package store: PostgreSQL-backed profile and seen-alert persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore implements Store on a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL with the configured DSN and
// applies migrations.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open PostgreSQL connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("PostgreSQL ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run PostgreSQL migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgreSQL migrations applied")

	return &PostgresStore{db: db}, nil
}

// CreateProfile inserts a new profile and returns its assigned ID.
func (s *PostgresStore) CreateProfile(ctx context.Context, profile models.Profile) (string, error) {
	profile.ID = uuid.NewString()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, identity, name, age, gender, region, district, language, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		profile.ID, profile.Identity, profile.Name, profile.Age, string(profile.Gender),
		profile.Region, profile.District, string(profile.Language), profile.CreatedAt)
	if err != nil {
		slog.Error("PostgresStore CreateProfile failed", "error", err, "identity", profile.Identity)
		return "", fmt.Errorf("failed to insert profile for %s: %w", profile.Identity, err)
	}
	slog.Debug("PostgresStore CreateProfile succeeded", "identity", profile.Identity, "profileID", profile.ID)
	return profile.ID, nil
}

// FetchProfile returns the profile for an identity, or (nil, nil) if absent.
func (s *PostgresStore) FetchProfile(ctx context.Context, identity string) (*models.Profile, error) {
	var p models.Profile
	var gender, language string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, identity, name, age, gender, region, district, language, created_at
		 FROM profiles WHERE identity = $1`, identity).
		Scan(&p.ID, &p.Identity, &p.Name, &p.Age, &gender, &p.Region, &p.District, &language, &p.CreatedAt)
	if err == sql.ErrNoRows {
		slog.Debug("PostgresStore FetchProfile not found", "identity", identity)
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore FetchProfile failed", "error", err, "identity", identity)
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", identity, err)
	}

	p.Gender = models.Gender(gender)
	p.Language = models.Language(language)
	return &p, nil
}

// DeleteProfile removes the profile and seen-alert rows for an identity.
func (s *PostgresStore) DeleteProfile(ctx context.Context, identity string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE identity = $1`, identity); err != nil {
		slog.Error("PostgresStore DeleteProfile failed", "error", err, "identity", identity)
		return fmt.Errorf("failed to delete profile for %s: %w", identity, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seen_alerts WHERE identity = $1`, identity); err != nil {
		slog.Error("PostgresStore DeleteProfile seen-alert cleanup failed", "error", err, "identity", identity)
		return err
	}
	slog.Debug("PostgresStore DeleteProfile succeeded", "identity", identity)
	return nil
}

// HasSeenAlert reports whether the alert was already delivered to the identity.
func (s *PostgresStore) HasSeenAlert(ctx context.Context, identity, alertID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM seen_alerts WHERE identity = $1 AND alert_id = $2`, identity, alertID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		slog.Error("PostgresStore HasSeenAlert failed", "error", err, "identity", identity, "alertID", alertID)
		return false, err
	}
	return true, nil
}

// MarkAlertSeen records the alert as delivered to the identity.
func (s *PostgresStore) MarkAlertSeen(ctx context.Context, identity, alertID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO seen_alerts (identity, alert_id, seen_at) VALUES ($1, $2, $3)
		 ON CONFLICT (identity, alert_id) DO NOTHING`,
		identity, alertID, time.Now())
	if err != nil {
		slog.Error("PostgresStore MarkAlertSeen failed", "error", err, "identity", identity, "alertID", alertID)
		return err
	}
	return nil
}

// Close closes the PostgreSQL connection pool.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing PostgreSQL connection pool")
	return s.db.Close()
}
