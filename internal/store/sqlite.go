// Package store: SQLite-backed profile and seen-alert persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at the
// configured DSN and applies migrations.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied")

	return &SQLiteStore{db: db}, nil
}

// CreateProfile inserts a new profile and returns its assigned ID.
func (s *SQLiteStore) CreateProfile(ctx context.Context, profile models.Profile) (string, error) {
	profile.ID = uuid.NewString()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, identity, name, age, gender, region, district, language, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.Identity, profile.Name, profile.Age, string(profile.Gender),
		profile.Region, profile.District, string(profile.Language), profile.CreatedAt)
	if err != nil {
		slog.Error("SQLiteStore CreateProfile failed", "error", err, "identity", profile.Identity)
		return "", fmt.Errorf("failed to insert profile for %s: %w", profile.Identity, err)
	}
	slog.Debug("SQLiteStore CreateProfile succeeded", "identity", profile.Identity, "profileID", profile.ID)
	return profile.ID, nil
}

// FetchProfile returns the profile for an identity, or (nil, nil) if absent.
func (s *SQLiteStore) FetchProfile(ctx context.Context, identity string) (*models.Profile, error) {
	var p models.Profile
	var gender, language string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, identity, name, age, gender, region, district, language, created_at
		 FROM profiles WHERE identity = ?`, identity).
		Scan(&p.ID, &p.Identity, &p.Name, &p.Age, &gender, &p.Region, &p.District, &language, &p.CreatedAt)
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore FetchProfile not found", "identity", identity)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore FetchProfile failed", "error", err, "identity", identity)
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", identity, err)
	}

	p.Gender = models.Gender(gender)
	p.Language = models.Language(language)
	return &p, nil
}

// DeleteProfile removes the profile and seen-alert rows for an identity.
func (s *SQLiteStore) DeleteProfile(ctx context.Context, identity string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE identity = ?`, identity); err != nil {
		slog.Error("SQLiteStore DeleteProfile failed", "error", err, "identity", identity)
		return fmt.Errorf("failed to delete profile for %s: %w", identity, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seen_alerts WHERE identity = ?`, identity); err != nil {
		slog.Error("SQLiteStore DeleteProfile seen-alert cleanup failed", "error", err, "identity", identity)
		return err
	}
	slog.Debug("SQLiteStore DeleteProfile succeeded", "identity", identity)
	return nil
}

// HasSeenAlert reports whether the alert was already delivered to the identity.
func (s *SQLiteStore) HasSeenAlert(ctx context.Context, identity, alertID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM seen_alerts WHERE identity = ? AND alert_id = ?`, identity, alertID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		slog.Error("SQLiteStore HasSeenAlert failed", "error", err, "identity", identity, "alertID", alertID)
		return false, err
	}
	return true, nil
}

// MarkAlertSeen records the alert as delivered to the identity.
func (s *SQLiteStore) MarkAlertSeen(ctx context.Context, identity, alertID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO seen_alerts (identity, alert_id, seen_at) VALUES (?, ?, ?)`,
		identity, alertID, time.Now())
	if err != nil {
		slog.Error("SQLiteStore MarkAlertSeen failed", "error", err, "identity", identity, "alertID", alertID)
		return err
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	return s.db.Close()
}
