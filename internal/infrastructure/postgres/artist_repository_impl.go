package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/internal/domain/repository"
)

type ArtistRepository struct {
	db DBTX
}

func NewArtistRepository(db DBTX) *ArtistRepository {
	return &ArtistRepository{db: db}
}

func (r *ArtistRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Artist, error) {
	a := &entity.Artist{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at
		FROM artists
		WHERE user_id = $1
	`, userID).Scan(&a.ID, &a.UserID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// Create links userID to a new artist record; used by the seed command.
func (r *ArtistRepository) Create(ctx context.Context, a *entity.Artist) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO artists (user_id)
		VALUES ($1)
		RETURNING id, created_at
	`, a.UserID).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

var _ repository.ArtistRepository = (*ArtistRepository)(nil)
