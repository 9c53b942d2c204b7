package store

import "log/slog"

// NewStore selects a backend from the configured DSN: PostgreSQL for
// postgres DSNs, SQLite for file paths, and in-memory when no DSN is set.
func NewStore(opts ...Option) (Store, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.DSN == "" {
		slog.Debug("No database DSN provided, using in-memory store")
		return NewInMemoryStore(), nil
	}
	if DetectDSNType(cfg.DSN) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store")
		return NewPostgresStore(WithPostgresDSN(cfg.DSN))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", cfg.DSN)
	return NewSQLiteStore(WithSQLiteDSN(cfg.DSN))
}
