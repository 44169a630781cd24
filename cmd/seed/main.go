package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/config"
	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/internal/domain/repository"
	pginfra "github.com/oksasatya/go-music-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

const (
	demoEmail    = "a@b.com"
	demoPassword = "password123"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	users := pginfra.NewUserRepository(db)
	artists := pginfra.NewArtistRepository(db)

	u, err := seedUser(ctx, users)
	if err != nil {
		logger.Fatalf("failed to seed user: %v", err)
	}
	logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("seeded user")

	a := &entity.Artist{UserID: u.ID}
	switch err := artists.Create(ctx, a); {
	case errors.Is(err, repository.ErrConflict):
		logger.WithField("user_id", u.ID).Info("artist already exists")
	case err != nil:
		logger.Fatalf("failed to seed artist: %v", err)
	default:
		logger.WithFields(logrus.Fields{"artist_id": a.ID, "user_id": u.ID}).Info("seeded artist")
	}
}

func seedUser(ctx context.Context, users *pginfra.UserRepository) (*entity.User, error) {
	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}
	u := &entity.User{FirstName: "Demo", LastName: "Artist", Email: demoEmail, Password: hash}
	err = users.Create(ctx, u)
	if errors.Is(err, repository.ErrConflict) {
		return users.GetByEmail(ctx, demoEmail)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
