package driven

import (
	"context"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// SessionStore keeps independent sessions for adapters that serve more than one user.
type SessionStore interface {
	// Create stores a new empty session and returns it.
	Create(ctx context.Context) (*domain.Session, error)

	// With runs fn with exclusive access to the session.
	// Returns domain.ErrNotFound for unknown IDs and domain.ErrSessionBusy
	// when another action holds the session.
	With(ctx context.Context, id string, fn func(*domain.Session) error) error

	// Delete drops a session.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
