package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileStore persists user profiles keyed by the owning user ID.
type ProfileStore interface {
	// Upsert inserts the profile or, on conflict by ID, overwrites
	// its full name. Repeated calls with the same ID never create
	// duplicate rows.
	Upsert(ctx context.Context, profile Profile) (Profile, error)
}

// Profile represents a user profile row.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	UpdatedAt time.Time `json:"updated_at"`
}
