package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/formdesk/formdesk-server/internal/model"
)

// Session implements the cookie login demo. The cookie holds an opaque
// session id; the username is resolved against the session store on
// every request instead of living in the cookie itself.
type Session struct {
	store model.SessionStore
}

// NewSession creates a session service.
func NewSession(store model.SessionStore) *Session {
	return &Session{store: store}
}

// Login creates a session for the username and returns its id.
func (s *Session) Login(ctx context.Context, username string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.store.Set(ctx, sessionID, username); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return sessionID, nil
}

// Logout removes the session. Unknown ids are fine, the session may
// have already expired.
func (s *Session) Logout(ctx context.Context, sessionID string) error {
	err := s.store.Delete(ctx, sessionID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve maps a session id back to its username. Unknown or expired
// sessions return ErrUnauthorized.
func (s *Session) Resolve(ctx context.Context, sessionID string) (string, error) {
	username, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return username, nil
}
