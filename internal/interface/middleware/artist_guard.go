package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-music-auth/internal/application"
	"github.com/oksasatya/go-music-auth/internal/domain/entity"
)

var ErrNotArtist = application.NewUnauthorized("artist access required")

// IsArtist is the artist predicate over a decoded payload.
func IsArtist(p entity.AccessTokenPayload) error {
	if !p.IsArtist() {
		return ErrNotArtist
	}
	return nil
}

// RequireArtist must run after BearerAuth in the same chain.
func RequireArtist(c *gin.Context) error {
	p, ok := PayloadFrom(c)
	if !ok {
		return ErrNotArtist
	}
	return IsArtist(p)
}
