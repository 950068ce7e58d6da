package driving

import (
	"context"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// SessionService manages independent study sessions for multi-session adapters.
type SessionService interface {
	// Create starts an empty session and returns its ID.
	Create(ctx context.Context) (string, error)

	// Do runs fn with exclusive access to the session.
	// Returns domain.ErrSessionBusy when another action holds it.
	Do(ctx context.Context, id string, fn func(*domain.Session) error) error

	// Delete discards a session.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}
