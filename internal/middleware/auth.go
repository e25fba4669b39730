package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/config"
	"github.com/hazra-dev/vidtube/internal/pkg/jwt"
	"github.com/hazra-dev/vidtube/internal/pkg/response"
)

// Auth requires a valid Bearer token and stores the caller identity in
// the gin context under "userID".
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid Bearer token is
// present and otherwise leaves the request anonymous. A missing or
// malformed token is not an error here; handlers must treat an absent
// "userID" as "viewer unknown", never as a zero identity.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if ok {
			if claims, err := jwt.ValidateToken(tokenString, cfg.JWTSecret); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Support both "Bearer <token>" (case-insensitive) and a raw token
	fields := strings.Fields(authHeader)
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return fields[1], true
	}
	return authHeader, true
}
