package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// DefaultMaxSessions bounds the number of live sessions; the least recently
// used session is discarded when a new one would exceed it.
const DefaultMaxSessions = 256

// sessionEntry pairs a session with the lock that serialises actions on it.
type sessionEntry struct {
	mu   sync.Mutex
	sess *domain.Session
}

// SessionStore is an in-memory implementation of driven.SessionStore.
// Sessions live for the lifetime of the process.
type SessionStore struct {
	sessions *lru.Cache[string, *sessionEntry]
}

// NewSessionStore creates a new in-memory session store.
// A non-positive maxSessions uses DefaultMaxSessions.
func NewSessionStore(maxSessions int) (*SessionStore, error) {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	cache, err := lru.New[string, *sessionEntry](maxSessions)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &SessionStore{sessions: cache}, nil
}

// Create starts an empty session with a random ID.
func (s *SessionStore) Create(_ context.Context) (*domain.Session, error) {
	sess := domain.NewSession(uuid.New().String())
	s.sessions.Add(sess.ID, &sessionEntry{sess: sess})
	return sess, nil
}

// With runs fn while holding the session's lock. A session already running
// an action yields domain.ErrSessionBusy instead of waiting.
func (s *SessionStore) With(ctx context.Context, id string, fn func(*domain.Session) error) error {
	entry, ok := s.sessions.Get(id)
	if !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entry.mu.TryLock() {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionBusy)
	}
	defer entry.mu.Unlock()

	return fn(entry.sess)
}

// Delete discards a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	if !s.sessions.Remove(id) {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns the IDs of all live sessions, oldest first.
func (s *SessionStore) List(_ context.Context) ([]string, error) {
	return s.sessions.Keys(), nil
}
