package websocket

import (
	"InfraDash/internal/api/middleware"
	ws "InfraDash/internal/websocket"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the websocket routes
func RegisterWebSocketRoutes(router *gin.Engine, hub *ws.Hub) {
	// Dashboard push endpoint
	router.GET("/ws/dashboard", func(c *gin.Context) {
		ws.LogWebSocketConnection(c.ClientIP(), c.Request.URL.Path, c.GetString(middleware.UsernameKey))
		hub.ServeHTTP(c.Writer, c.Request)
	})
}
