package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*security.Claims, error)
}

// BearerToken достает токен из заголовка Authorization: Bearer <token>.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No valid token provided"})
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case errors.Is(err, domain.ErrTokenRevoked):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		case errors.Is(err, domain.ErrInvalidToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		case err != nil:
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(userIDKey, claims.UserID)

		c.Next()
	}
}

func UserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
