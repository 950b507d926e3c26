package postgres

import (
	"context"

	"github.com/formdesk/formdesk-server/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile model.Profile) (model.Profile, error) {
	query := `
		INSERT INTO profiles (id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = NOW()
		RETURNING id, full_name, updated_at`

	var saved model.Profile
	err := r.db.QueryRow(ctx, query, profile.ID, profile.FullName).Scan(
		&saved.ID, &saved.FullName, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Profile{}, err
	}

	return saved, nil
}
