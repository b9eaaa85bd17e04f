package middleware

import (
	"net/http"
	"strings"

	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization header.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c, authService)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"errors": err.Error()})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the acting user when a valid token is
// present but lets anonymous requests through. Read endpoints use it so
// viewer-dependent flags and filters work without requiring a login.
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := bearerClaims(c, authService); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, authService service.AuthService) (*service.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingAuthHeader
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errBadAuthHeader
	}

	return authService.ValidateToken(parts[1])
}

// UserID returns the authenticated user's id from the request context, or
// (0, false) for an anonymous request.
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
