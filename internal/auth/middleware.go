package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const tokenContextKey = "bearer_token"

// Middleware extracts the bearer token for protected routes. Authorization
// against a capability stays with the handlers, which know what they need.
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

func (m *Middleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// TokenFromContext returns the bearer token stored by RequireToken.
func TokenFromContext(c *gin.Context) string {
	token, _ := c.Get(tokenContextKey)
	s, _ := token.(string)
	return s
}
