package repository

import (
	"context"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateFields writes every set field in a single statement.
	UpdateFields(ctx context.Context, id int64, f entity.UserFields) error
}
