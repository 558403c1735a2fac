package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"InfraDash/internal/api/handlers"
	"InfraDash/internal/api/middleware"
	"InfraDash/internal/api/router/routes/auth"
	"InfraDash/internal/api/router/routes/dashboard"
	"InfraDash/internal/api/router/routes/websocket"
	dash "InfraDash/internal/dashboard"
	"InfraDash/internal/pkg/config"
	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/pkg/metrics"
	ws "InfraDash/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router encapsulates the HTTP router functionality
type Router struct {
	config           *config.Config
	engine           *gin.Engine
	server           *http.Server
	hub              *ws.Hub
	dashboardHandler *handlers.DashboardHandler
	hostHandler      *handlers.HostHandler
}

// New creates a new router instance with the given configuration
func New(cfg *config.Config, controller *dash.Controller, hub *ws.Hub) *Router {
	// Configure gin mode based on config
	if cfg.Logs.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		config:           cfg,
		engine:           gin.New(),
		hub:              hub,
		dashboardHandler: handlers.NewDashboardHandler(controller, cfg.AppName),
		hostHandler:      handlers.NewHostHandler(),
	}
	r.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        r.engine,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}
	return r
}

// Initialize sets up the router with middlewares and routes
func (r *Router) Initialize() *Router {
	r.engine.Use(gin.Recovery())
	r.engine.Use(LoggerMiddleware())

	if r.config.API.CORS.Enabled {
		r.engine.Use(CORSMiddleware(r.config))
	}

	if r.config.API.Auth.Enabled {
		excluded := append([]string{}, middleware.PublicPaths...)
		if r.config.Metrics.Enabled {
			excluded = append(excluded, r.config.Metrics.Path)
		}
		r.engine.Use(middleware.JWTAuthMiddleware(r.config.API.Auth.JWTSecret, excluded...))
		r.registerAuthRoutes()
	}

	r.registerAPIRoutes()
	r.registerWebSocketRoutes()
	r.registerHealthEndpoint()
	r.registerMetricsEndpoint()

	// Log all registered routes for debugging
	for _, route := range r.engine.Routes() {
		logger.Debug("Registered route",
			logger.String("method", route.Method),
			logger.String("path", route.Path))
	}

	return r
}

// registerAPIRoutes registers the dashboard page and API
func (r *Router) registerAPIRoutes() {
	dashboard.RegisterRoutes(r.engine, r.dashboardHandler, r.hostHandler)
}

// registerWebSocketRoutes registers all WebSocket routes
func (r *Router) registerWebSocketRoutes() {
	websocket.RegisterWebSocketRoutes(r.engine, r.hub)
}

func (r *Router) registerAuthRoutes() {
	registrar := &auth.AuthRegistrar{}
	if err := registrar.Register(r.engine, r.config); err != nil {
		logger.Error("Failed to register auth routes", logger.Err(err))
	}
}

// registerHealthEndpoint provides a simple liveness endpoint
func (r *Router) registerHealthEndpoint() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"app":     r.config.AppName,
			"version": "1.0",
		})
	})
}

func (r *Router) registerMetricsEndpoint() {
	if !r.config.Metrics.Enabled {
		return
	}
	r.engine.GET(r.config.Metrics.Path, gin.WrapH(metrics.Default().Handler()))
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

// LoggerMiddleware creates a middleware for logging HTTP requests
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for WebSocket connections
		if c.Request.Header.Get("Upgrade") == "websocket" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.Info("HTTP Request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("latency", time.Since(start)),
		)
	}
}

// CORSMiddleware builds the CORS policy from api.cors. No configured
// origins means any origin.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  cfg.API.CORS.AllowedMethods,
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	if len(cfg.API.CORS.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.API.CORS.AllowedOrigins
	}
	return cors.New(corsConfig)
}

// Start serves HTTP until Shutdown is called. It returns nil after a
// graceful shutdown.
func (r *Router) Start() error {
	logger.Info("Starting HTTP server", logger.String("address", r.server.Addr))
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start HTTP server", logger.Err(err))
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}
