package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-music-auth/internal/domain/repository"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

// AuthService verifies credentials and assembles access token payloads.
// It holds no per-request state and is safe for concurrent use.
type AuthService struct {
	Users   repo.UserRepository
	Artists repo.ArtistRepository
	Audit   AuditRecorder
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewAuthService(users repo.UserRepository, artists repo.ArtistRepository, audit AuditRecorder, logger *logrus.Logger, timeout time.Duration) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthService{
		Users:   users,
		Artists: artists,
		Audit:   audit,
		Logger:  logger,
		Timeout: timeout,
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup stores a new user with a bcrypt hash of the password.
// A duplicate email yields repository.ErrConflict.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
		Password:  hash,
	}

	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Users.Create(c, u); err != nil {
		if !errors.Is(err, repo.ErrConflict) {
			s.Logger.WithError(err).Error("create user failed")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	record(ctx, s.Audit, entity.AuditSignup, u.ID, u.Email, true)
	return u, nil
}

// Login checks email/password and returns the payload to sign.
// Unknown email and wrong password fail with the same ErrInvalidCredentials.
// Directory failures other than not-found are returned wrapped, not as Unauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (entity.AccessTokenPayload, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	u, err := s.Users.GetByEmail(c, email)
	cancel()
	if errors.Is(err, repo.ErrNotFound) || (err == nil && u == nil) {
		// keeps unknown-email latency close to a real comparison
		s.PasswordMatches(password, helpers.DummyHash())
		record(ctx, s.Audit, entity.AuditLoginFailure, 0, email, false)
		return entity.AccessTokenPayload{}, ErrInvalidCredentials
	}
	if err != nil {
		return entity.AccessTokenPayload{}, fmt.Errorf("find user by email: %w", err)
	}

	if !s.PasswordMatches(password, u.Password) {
		record(ctx, s.Audit, entity.AuditLoginFailure, u.ID, u.Email, false)
		return entity.AccessTokenPayload{}, ErrInvalidCredentials
	}

	payload := entity.AccessTokenPayload{Email: u.Email, UserID: u.ID}

	c, cancel = withTimeout(ctx, s.Timeout)
	artist, err := s.Artists.GetByUserID(c, u.ID)
	cancel()
	switch {
	case err == nil && artist != nil:
		payload.ArtistID = artist.ID
	case err == nil, errors.Is(err, repo.ErrNotFound):
	default:
		return entity.AccessTokenPayload{}, fmt.Errorf("find artist by user: %w", err)
	}

	record(ctx, s.Audit, entity.AuditLoginSuccess, u.ID, u.Email, true)
	return payload, nil
}

// PasswordMatches never fails; any comparison problem is a mismatch.
func (s *AuthService) PasswordMatches(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return helpers.CompareHashAndPassword(hash, plain)
}
