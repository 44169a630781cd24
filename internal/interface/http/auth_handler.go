package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/internal/application"
	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/internal/interface/middleware"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
	"github.com/oksasatya/go-music-auth/pkg/response"
	"github.com/oksasatya/go-music-auth/pkg/validation"
)

type AuthHandler struct {
	Auth      Authenticator
	TwoFactor TwoFactorManager
	JWT       *helpers.JWTManager
	Cookies   *helpers.Manager
	Logger    *logrus.Logger
}

func NewAuthHandler(auth Authenticator, twoFactor TwoFactorManager, jwt *helpers.JWTManager, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthHandler{Auth: auth, TwoFactor: twoFactor, JWT: jwt, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type validate2FARequest struct {
	Token string `json:"token" binding:"required"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	u, err := h.Auth.Signup(c.Request.Context(), application.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}, "user created", nil))
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	p, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	token, exp, err := h.JWT.GenerateAccessToken(p.UserID, p.Email, p.ArtistID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.SetAccess(c, token, exp)
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{"accessToken": token}, "login successful",
		gin.H{"access_expires_at": exp}))
}

// Profile GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	p, ok := payload(c)
	if !ok {
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, p, "ok", nil))
}

// Enable2FA GET /api/auth/enable-2fa
func (h *AuthHandler) Enable2FA(c *gin.Context) {
	p, ok := payload(c)
	if !ok {
		return
	}
	res, err := h.TwoFactor.Enable2FA(c.Request.Context(), p.UserID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, res, "two-factor authentication enabled", nil))
}

// Disable2FA GET /api/auth/disable-2fa
func (h *AuthHandler) Disable2FA(c *gin.Context) {
	p, ok := payload(c)
	if !ok {
		return
	}
	if err := h.TwoFactor.Disable2FA(c.Request.Context(), p.UserID); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{"disabled": true}, "two-factor authentication disabled", nil))
}

// Validate2FA POST /api/auth/validate-2fa
func (h *AuthHandler) Validate2FA(c *gin.Context) {
	p, ok := payload(c)
	if !ok {
		return
	}
	var req validate2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	res, err := h.TwoFactor.Validate2FAToken(c.Request.Context(), p.UserID, req.Token)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, res, "ok", nil))
}

// payload writes 401 when the guard chain stored no token payload.
func payload(c *gin.Context) (entity.AccessTokenPayload, bool) {
	p, ok := middleware.PayloadFrom(c)
	if !ok {
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, middleware.ErrMissingToken.Error(), nil))
	}
	return p, ok
}
