package dashboard

import (
	"InfraDash/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the dashboard page and its operations
func RegisterRoutes(engine *gin.Engine, dashboardHandler *handlers.DashboardHandler, hostHandler *handlers.HostHandler) {
	engine.GET("/", dashboardHandler.Index)

	dashboardGroup := engine.Group("/api/dashboard")
	{
		// Page state
		dashboardGroup.GET("/state", dashboardHandler.GetState)
		dashboardGroup.GET("/regions/:id", dashboardHandler.GetRegion)

		// Operations
		dashboardGroup.POST("/toggle", dashboardHandler.TogglePolling)
		dashboardGroup.POST("/refresh", dashboardHandler.Refresh)
		dashboardGroup.POST("/probes/:control", dashboardHandler.InvokeProbe)
		dashboardGroup.POST("/probe", dashboardHandler.Invoke)

		// Dashboard host
		dashboardGroup.GET("/host", hostHandler.GetHostInfo)
		dashboardGroup.GET("/host/resources", hostHandler.GetResources)
	}
}
