package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-music-auth/internal/interface/http"
	"github.com/oksasatya/go-music-auth/internal/interface/middleware"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

// ArtistModule serves artist-only routes behind the JWT and artist guards.
type ArtistModule struct {
	Handler *handlers.ArtistHandler
	JWT     *helpers.JWTManager
}

func NewArtistModule(h *handlers.ArtistHandler, jwt *helpers.JWTManager) *ArtistModule {
	return &ArtistModule{Handler: h, JWT: jwt}
}

func (m *ArtistModule) Register(rg *gin.RouterGroup) {
	artists := rg.Group("/artists")
	artists.Use(middleware.Chain(middleware.BearerAuth(m.JWT), middleware.RequireArtist))
	{
		artists.GET("/me", m.Handler.Me)
	}
}
