// Package store provides profile and seen-alert persistence for Aarogya Sarthi.
//
// Backends: in-memory (default), SQLite, and PostgreSQL. The backend is
// selected from the DSN; file paths select SQLite, postgres:// URLs and
// key=value DSNs select PostgreSQL.
package store

import (
	"context"
	"strings"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// Store is the profile-store capability the router and handlers depend on.
// Every call is atomic. FetchProfile returns (nil, nil) when the identity
// has no profile.
type Store interface {
	CreateProfile(ctx context.Context, profile models.Profile) (string, error)
	FetchProfile(ctx context.Context, identity string) (*models.Profile, error)
	DeleteProfile(ctx context.Context, identity string) error

	// HasSeenAlert and MarkAlertSeen maintain the per-identity set of
	// outbreak alerts that were already delivered.
	HasSeenAlert(ctx context.Context, identity, alertID string) (bool, error)
	MarkAlertSeen(ctx context.Context, identity, alertID string) error

	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option defines a configuration option for store constructors.
type Option func(*Opts)

// WithSQLiteDSN sets a SQLite file path as the backend DSN.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// WithPostgresDSN sets a PostgreSQL connection string as the backend DSN.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite".
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}
