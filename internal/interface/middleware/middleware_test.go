package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func newGuardedRouter(guards ...Guard) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/p", Chain(guards...), func(c *gin.Context) {
		p, _ := PayloadFrom(c)
		c.JSON(http.StatusOK, p)
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestBearerAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newGuardedRouter(BearerAuth(jwt))
	tok, _, err := jwt.GenerateAccessToken(7, "a@b.com", 42)
	require.NoError(t, err)

	t.Run("valid bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := do(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		var p entity.AccessTokenPayload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, entity.AccessTokenPayload{Email: "a@b.com", UserID: 7, ArtistID: 42}, p)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: tok})
		assert.Equal(t, http.StatusOK, do(r, req).Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, "/p", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "missing access token", decode(t, w).Message)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Token "+tok)
		assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, _, err := helpers.NewJWTManager("other", time.Hour).GenerateAccessToken(7, "a@b.com", 0)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		w := do(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid access token", decode(t, w).Message)
	})

	t.Run("expired", func(t *testing.T) {
		old, _, err := helpers.NewJWTManager("secret", -time.Minute).GenerateAccessToken(7, "a@b.com", 0)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer "+old)
		assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
	})
}

func TestRequireArtist(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newGuardedRouter(BearerAuth(jwt), RequireArtist)

	artistTok, _, err := jwt.GenerateAccessToken(7, "a@b.com", 42)
	require.NoError(t, err)
	userTok, _, err := jwt.GenerateAccessToken(8, "c@d.com", 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+artistTok)
	assert.Equal(t, http.StatusOK, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	w := do(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "artist access required", decode(t, w).Message)
}

func TestIsArtist(t *testing.T) {
	assert.NoError(t, IsArtist(entity.AccessTokenPayload{UserID: 1, ArtistID: 3}))
	assert.ErrorIs(t, IsArtist(entity.AccessTokenPayload{UserID: 1}), ErrNotArtist)
}

func TestChain_ShortCircuits(t *testing.T) {
	var calls []string
	first := func(c *gin.Context) error { calls = append(calls, "first"); return errors.New("nope") }
	second := func(c *gin.Context) error { calls = append(calls, "second"); return nil }

	r := newGuardedRouter(first, second)
	w := do(r, httptest.NewRequest(http.MethodGet, "/p", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"first"}, calls)
	e := decode(t, w)
	assert.False(t, e.Success)
	assert.Equal(t, "nope", e.Message)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestIDKey)) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	const id = "0b8a5d62-5e1e-4b8e-9e4a-2f6f1a4d7c11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, id)
	assert.Equal(t, id, do(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	assert.NotEqual(t, "<script>", do(r, req).Body.String())
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ClientIP(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.9")
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	assert.Equal(t, "203.0.113.9", do(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", do(r, req).Body.String())
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics("music_auth", reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/ok", "204")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "unmatched", "404")))

	_, err = NewHTTPMetrics("music_auth", reg)
	assert.Error(t, err)
}

func TestAccessLog(t *testing.T) {
	logger := helpers.NewNopLogger()
	var buf strings.Builder
	logger.SetOutput(&buf)

	r := gin.New()
	r.Use(RequestIDMiddleware(), RealIP(), AccessLog(logger))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	do(r, httptest.NewRequest(http.MethodGet, "/x?token=abc", nil))

	out := buf.String()
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/x")
	assert.NotContains(t, out, "token=abc")
}
