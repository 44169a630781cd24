package repository

import (
	"context"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
)

// ArtistRepository looks up artist records by their owning user.
type ArtistRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*entity.Artist, error)
}
