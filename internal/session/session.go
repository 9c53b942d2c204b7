// Package session provides the per-identity conversation session store.
//
// Sessions are ephemeral: the router tolerates total session loss by
// falling back to a safe entry state, so the default backend is a plain
// in-memory map. A Redis backend is available for deployments that want
// sessions to survive restarts or to be shared across instances.
package session

import (
	"context"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// Store is the session-store capability injected into the router.
// Get returns (nil, nil) when the identity has no session.
type Store interface {
	Get(ctx context.Context, identity string) (*models.Session, error)
	Put(ctx context.Context, identity string, session models.Session) error
	Delete(ctx context.Context, identity string) error
}
