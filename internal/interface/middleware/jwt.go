package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-music-auth/internal/application"
	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

const CtxPayloadKey = "authPayload"

var (
	ErrMissingToken = application.NewUnauthorized("missing access token")
	ErrInvalidToken = application.NewUnauthorized("invalid access token")
)

// BearerAuth decodes the access token from "Authorization: Bearer <token>",
// falling back to the access_token cookie, and stores the payload under
// CtxPayloadKey.
func BearerAuth(jwt *helpers.JWTManager) Guard {
	return func(c *gin.Context) error {
		token, err := accessToken(c)
		if err != nil {
			return ErrMissingToken
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			return ErrInvalidToken
		}
		c.Set(CtxPayloadKey, entity.AccessTokenPayload{
			Email:    claims.Email,
			UserID:   claims.UserID,
			ArtistID: claims.ArtistID,
		})
		return nil
	}
}

// PayloadFrom returns the payload stored by BearerAuth.
func PayloadFrom(c *gin.Context) (entity.AccessTokenPayload, bool) {
	v, ok := c.Get(CtxPayloadKey)
	if !ok {
		return entity.AccessTokenPayload{}, false
	}
	p, ok := v.(entity.AccessTokenPayload)
	return p, ok
}

func accessToken(c *gin.Context) (string, error) {
	if h := c.GetHeader("Authorization"); h != "" {
		return bearerToken(h)
	}
	tok, err := c.Cookie(helpers.AccessTokenCookie)
	if err != nil || tok == "" {
		return "", errors.New("missing access token")
	}
	return tok, nil
}

func bearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}
