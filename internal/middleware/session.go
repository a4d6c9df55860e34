package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ContextAccessToken = "access_token"

// TokenGate is the session side the middleware needs.
type TokenGate interface {
	EnsureValid(ctx context.Context) bool
	AccessToken() (string, bool)
}

// SessionGate fronts every authenticated route: it runs the token
// refresh gate and stashes the current access token for the handler.
// A failed gate means the tokens are already cleared; the caller must
// log in again.
func SessionGate(gate TokenGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.EnsureValid(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "not authenticated",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}

		token, ok := gate.AccessToken()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "not authenticated",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}

		c.Set(ContextAccessToken, token)
		c.Next()
	}
}
