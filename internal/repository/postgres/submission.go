package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/formdesk/formdesk-server/internal/model"
)

var _ model.SubmissionStore = (*SubmissionRepository)(nil)

type SubmissionRepository struct {
	db *Connection
}

func NewSubmissionRepository(db *Connection) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission model.Submission) (model.Submission, error) {
	query := `
		INSERT INTO submissions (id, name, email, avatar_path, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, avatar_path, avatar_url, created_at`

	var saved model.Submission
	err := r.db.QueryRow(ctx, query,
		submission.ID, submission.Name, submission.Email, submission.AvatarPath, submission.AvatarURL,
	).Scan(
		&saved.ID, &saved.Name, &saved.Email, &saved.AvatarPath, &saved.AvatarURL, &saved.CreatedAt,
	)
	if err != nil {
		return model.Submission{}, err
	}

	return saved, nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Submission, error) {
	query := `
		SELECT id, name, email, avatar_path, avatar_url, created_at
		FROM submissions
		WHERE id = $1`

	var submission model.Submission
	err := r.db.QueryRow(ctx, query, id).Scan(
		&submission.ID, &submission.Name, &submission.Email,
		&submission.AvatarPath, &submission.AvatarURL, &submission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Submission{}, model.ErrNotFound
		}
		return model.Submission{}, err
	}

	return submission, nil
}

func (r *SubmissionRepository) Latest(ctx context.Context, limit int) ([]model.Submission, error) {
	query := `
		SELECT id, name, email, avatar_path, avatar_url, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		var submission model.Submission
		err := rows.Scan(
			&submission.ID, &submission.Name, &submission.Email,
			&submission.AvatarPath, &submission.AvatarURL, &submission.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}
