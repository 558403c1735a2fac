package startup

import (
	"os"

	"InfraDash/internal/api/router"
	"InfraDash/internal/app"
	"InfraDash/internal/pkg/logger"
)

// StartServer builds the dashboard and serves it in the background
func StartServer(application *app.Application) *router.Builder {
	builder, err := router.NewBuilder(application.GetConfig())
	if err != nil {
		logger.Error("Failed to build dashboard", logger.Err(err))
		os.Exit(1)
	}
	builder.WithAllRoutes()

	go func() {
		if err := builder.Start(); err != nil {
			logger.Error("HTTP server stopped", logger.Err(err))
			os.Exit(1)
		}
	}()

	return builder
}
