package auth

import (
	"net/http"
	"time"

	"InfraDash/internal/pkg/config"
	"InfraDash/internal/pkg/jwt"
	"InfraDash/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DefaultTokenTTL applies when api.auth.jwt_expiration is unset
const DefaultTokenTTL = 24 * time.Hour

// AuthRegistrar registers authentication routes
type AuthRegistrar struct{}

// Register adds the login endpoint
func (r *AuthRegistrar) Register(engine *gin.Engine, config *config.Config) error {
	authGroup := engine.Group("/api/auth")
	{
		authGroup.POST("/login", func(c *gin.Context) {
			var credentials struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}

			if err := c.ShouldBindJSON(&credentials); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
				return
			}

			if credentials.Username != config.Agent.Auth.User || credentials.Password != config.Agent.Auth.Pass {
				logger.Warn("Failed authentication attempt",
					logger.String("username", credentials.Username),
					logger.String("ip", c.ClientIP()))

				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid credentials",
				})
				return
			}

			tokenExpiration := DefaultTokenTTL
			if config.API.Auth.JWTExpiration > 0 {
				tokenExpiration = time.Duration(config.API.Auth.JWTExpiration) * time.Second
			}

			token, err := jwt.GenerateToken(credentials.Username, config.API.Auth.JWTSecret, tokenExpiration)
			if err != nil {
				logger.Error("Failed to generate token", logger.Err(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":     "success",
				"token":      token,
				"expires_in": tokenExpiration.Seconds(),
			})
		})
	}

	return nil
}
