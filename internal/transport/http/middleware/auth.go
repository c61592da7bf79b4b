package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tarjamli/backend/internal/token"
)

const errUnauthorized = "Unauthorized"

// SessionVerifier is the subset of token.Issuer the middleware needs.
type SessionVerifier interface {
	VerifySession(raw string) (*token.Claims, error)
}

// Auth validates a Bearer session token and sets "userID" and
// "userEmail" in the gin context for downstream handlers.
func Auth(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		claims, err := verifier.VerifySession(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}
