package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-music-auth/internal/domain/repository"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
	"github.com/oksasatya/go-music-auth/pkg/response"
)

type ArtistHandler struct {
	Artists repo.ArtistRepository
	Logger  *logrus.Logger
}

func NewArtistHandler(artists repo.ArtistRepository, logger *logrus.Logger) *ArtistHandler {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &ArtistHandler{Artists: artists, Logger: logger}
}

type artistResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Me GET /api/artists/me (artist guard)
func (h *ArtistHandler) Me(c *gin.Context) {
	p, ok := payload(c)
	if !ok {
		return
	}
	a, err := h.Artists.GetByUserID(c.Request.Context(), p.UserID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, artistResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt,
	}, "ok", nil))
}
