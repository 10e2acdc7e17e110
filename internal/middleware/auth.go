package middleware

import (
	"net/http"
	"strings"

	"apibasics/internal/pkg/response"
	"apibasics/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// ContextUserID and ContextEmail are the gin context keys set by Auth.
// Handlers must scope every data access by these values and never trust
// identifiers from the request body or path.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// Auth enforces the bearer scheme: the Authorization header must be
// exactly two space-separated parts and the scheme word must be the
// literal "Bearer". Missing header, malformed scheme and invalid token
// all produce the same 401.
func Auth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		parts := strings.Split(h, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		claims, err := codec.Verify(parts[1])
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}
