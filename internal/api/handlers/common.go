package handlers

import (
	"net/http"

	"InfraDash/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HandleError provides a consistent way to handle errors in route handlers
func HandleError(c *gin.Context, err error) {
	RespondError(c, http.StatusInternalServerError, err)
}

// RespondError logs err and writes it as {"error": "..."} with status
func RespondError(c *gin.Context, status int, err error) {
	logger.Error("API error",
		logger.String("path", c.Request.URL.Path),
		logger.Int("status", status),
		logger.Err(err))
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
