package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubmissionStore defines persistence operations for form submissions.
type SubmissionStore interface {
	Create(ctx context.Context, submission Submission) (Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (Submission, error)
	Latest(ctx context.Context, limit int) ([]Submission, error)
}

// Submission represents one stored form entry.
// AvatarPath is set only when an image was uploaded; AvatarURL always
// holds a fetchable URL, falling back to a placeholder otherwise.
type Submission struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	AvatarPath *string   `json:"avatar_path"`
	AvatarURL  string    `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmissionInput carries the raw form fields before validation.
type SubmissionInput struct {
	Name   string
	Email  string
	Avatar *FileInput
}

// FileInput describes an uploaded form file. A nil FileInput or one of
// zero size counts as "no file provided".
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}
