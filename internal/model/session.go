package model

import "context"

// SessionStore maps opaque session identifiers to usernames for the
// cookie login demo. Entries expire on the store's TTL.
type SessionStore interface {
	Set(ctx context.Context, sessionID, username string) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
