package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/model"
	"github.com/formdesk/formdesk-server/internal/validation"
)

const avatarPrefix = "avatars/"

// Submission orchestrates the form submission flow: authoritative
// validation, optional avatar upload, then a single record insert.
type Submission struct {
	store       model.SubmissionStore
	storage     model.Storage
	logger      *logger.Logger
	fallbackURL string
	opts        validation.Options
}

// NewSubmission creates a submission service. fallbackURL is the
// placeholder avatar URL used when no image is uploaded or no public
// URL can be resolved.
func NewSubmission(
	store model.SubmissionStore,
	storage model.Storage,
	logger *logger.Logger,
	fallbackURL string,
	strict bool,
) *Submission {
	return &Submission{
		store:       store,
		storage:     storage,
		logger:      logger,
		fallbackURL: fallbackURL,
		opts:        validation.Options{Strict: strict},
	}
}

// Create validates the input, uploads the avatar when present and
// inserts the submission. Validation failures return *ValidationError
// before any side effect; upload failures return *UploadError before
// any database write.
func (s *Submission) Create(ctx context.Context, input model.SubmissionInput) (model.Submission, error) {
	if errs := validation.Submission(input, s.opts); len(errs) > 0 {
		return model.Submission{}, &ValidationError{Fields: errs}
	}

	var avatarPath *string
	avatarURL := s.fallbackURL

	if validation.HasFile(input.Avatar) {
		key := avatarPrefix + uuid.NewString() + "." + avatarExt(input.Avatar)

		err := s.storage.Upload(ctx, key, bytes.NewReader(input.Avatar.Data), input.Avatar.Size, input.Avatar.ContentType)
		if err != nil {
			return model.Submission{}, &UploadError{Err: err}
		}

		avatarPath = &key
		if url := s.storage.PublicURL(key); url != "" {
			avatarURL = url
		}
	}

	submission := model.Submission{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		AvatarPath: avatarPath,
		AvatarURL:  avatarURL,
	}

	saved, err := s.store.Create(ctx, submission)
	if err != nil {
		if avatarPath != nil {
			// No compensating delete: the object stays orphaned.
			s.logger.Warn("submission insert failed after upload, object left orphaned", "key", *avatarPath, "error", err)
		}
		return model.Submission{}, fmt.Errorf("failed to create submission: %w", err)
	}

	return saved, nil
}

// Avatar streams the stored avatar of a submission along with its
// content type. Missing submissions, submissions without an avatar and
// vanished objects all surface as ErrNotFound; the object is stat'd
// first because the storage download is lazy and would only fail on
// read.
func (s *Submission) Avatar(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	submission, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, "", err
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get submission: %w", err)
	}
	if submission.AvatarPath == nil {
		return nil, "", model.ErrNotFound
	}

	key := *submission.AvatarPath

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check object: %w", err)
	}
	if !exists {
		return nil, "", model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download object: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return reader, contentType, nil
}

// Latest returns the most recent submissions, newest first.
func (s *Submission) Latest(ctx context.Context, limit int) ([]model.Submission, error) {
	submissions, err := s.store.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// avatarExt picks the storage key extension: the original filename's
// extension, else one derived from the declared MIME type, else "png".
func avatarExt(file *model.FileInput) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), "."); ext != "" {
		return ext
	}
	if _, sub, ok := strings.Cut(file.ContentType, "/"); ok && sub != "" {
		return strings.ToLower(sub)
	}
	return "png"
}
