package services

import (
	"context"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService exposes the session store to driving adapters.
type SessionService struct {
	store driven.SessionStore
}

// NewSessionService creates a new session service.
func NewSessionService(store driven.SessionStore) *SessionService {
	return &SessionService{store: store}
}

// Create starts an empty session.
func (s *SessionService) Create(ctx context.Context) (string, error) {
	sess, err := s.store.Create(ctx)
	if err != nil {
		return "", err
	}
	logger.Debug("Session created: %s", sess.ID)
	return sess.ID, nil
}

// Do runs fn with exclusive access to the session.
func (s *SessionService) Do(ctx context.Context, id string, fn func(*domain.Session) error) error {
	return s.store.With(ctx, id, fn)
}

// Delete discards a session.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Debug("Session deleted: %s", id)
	return nil
}

// List returns the IDs of all live sessions.
func (s *SessionService) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}
