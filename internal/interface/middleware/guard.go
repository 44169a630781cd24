package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-music-auth/pkg/response"
)

// Guard inspects a request and returns an error to reject it.
// Guards may store values on the context for later guards and handlers.
type Guard func(c *gin.Context) error

// Chain runs guards in order. The first failing guard aborts the request
// with 401 and its error message; later guards do not run.
func Chain(guards ...Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, g := range guards {
			if err := g(c); err != nil {
				response.Abort(c, response.Error[any](c, http.StatusUnauthorized, err.Error(), nil))
				return
			}
		}
		c.Next()
	}
}
