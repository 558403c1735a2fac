package middleware

import (
	"net/http"
	"strings"

	"InfraDash/internal/pkg/jwt"
	"InfraDash/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UsernameKey is the gin context key holding the authenticated user
const UsernameKey = "username"

// PublicPaths never require a token
var PublicPaths = []string{
	"/api/auth/login",
	"/",       // Dashboard shell, it reads its token from local storage
	"/health", // Liveness probe
}

// JWTAuthMiddleware creates a middleware to validate JWT tokens. Paths in
// excluded are served without a token.
func JWTAuthMiddleware(jwtSecret string, excluded ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(excluded))
	for _, path := range excluded {
		skip[path] = true
	}

	return func(c *gin.Context) {
		currentPath := c.Request.URL.Path
		if skip[currentPath] {
			c.Next()
			return
		}

		// Browsers cannot set headers on a websocket handshake, so the token
		// may travel as a query param there
		isWebSocket := strings.EqualFold(c.Request.Header.Get("Upgrade"), "websocket")
		token := ""
		if isWebSocket {
			token = c.Query("token")
		}

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				return
			}
			token = parts[1]
		}

		claims, err := jwt.ValidateToken(token, jwtSecret)
		if err != nil {
			logger.Warn("Invalid JWT token",
				logger.Err(err),
				logger.String("path", currentPath),
				logger.Bool("websocket", isWebSocket))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Store username in context for future use
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}
