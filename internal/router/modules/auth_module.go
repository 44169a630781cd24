package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-music-auth/internal/interface/http"
	"github.com/oksasatya/go-music-auth/internal/interface/middleware"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

// AuthModule routes:
// Public: POST /auth/signup, POST /auth/login
// JWT: GET /auth/enable-2fa, GET /auth/disable-2fa, POST /auth/validate-2fa, GET /auth/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", m.Handler.Signup)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Chain(middleware.BearerAuth(m.JWT)))
	{
		auth.GET("/enable-2fa", m.Handler.Enable2FA)
		auth.GET("/disable-2fa", m.Handler.Disable2FA)
		auth.POST("/validate-2fa", m.Handler.Validate2FA)
		auth.GET("/profile", m.Handler.Profile)
	}
}
