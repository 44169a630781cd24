package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/internal/application"
	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-music-auth/internal/domain/repository"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
	"github.com/oksasatya/go-music-auth/pkg/response"
)

// Authenticator is the credential side of the auth API.
type Authenticator interface {
	Signup(ctx context.Context, in application.SignupInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (entity.AccessTokenPayload, error)
}

// TwoFactorManager is the 2FA side of the auth API.
type TwoFactorManager interface {
	Enable2FA(ctx context.Context, userID int64) (application.Enable2FAResult, error)
	Disable2FA(ctx context.Context, userID int64) error
	Validate2FAToken(ctx context.Context, userID int64, token string) (application.Validate2FAResult, error)
}

// writeError maps service errors to HTTP. Only Unauthorized messages reach
// the client verbatim.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var unauth *application.Unauthorized
	switch {
	case errors.As(err, &unauth):
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, unauth.Error(), nil))
	case errors.Is(err, repo.ErrConflict):
		response.JSON(c, response.Error[any](c, http.StatusConflict, "User already exists", nil))
	case errors.Is(err, repo.ErrNotFound):
		response.JSON(c, response.Error[any](c, http.StatusNotFound, "not found", nil))
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "internal server error", nil))
	}
}
