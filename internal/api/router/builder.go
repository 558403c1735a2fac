package router

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"InfraDash/internal/alerts"
	dash "InfraDash/internal/dashboard"
	"InfraDash/internal/dashboard/fetch"
	"InfraDash/internal/notifications"
	"InfraDash/internal/pkg/config"
	"InfraDash/internal/pkg/logger"
	ws "InfraDash/internal/websocket"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// StateMessage is the websocket greeting carrying the whole page
type StateMessage struct {
	Type  string     `json:"type"`
	State dash.State `json:"state"`
}

// Builder provides a fluent interface for constructing a router together
// with the dashboard controller and websocket hub it serves
type Builder struct {
	router      *Router
	controller  *dash.Controller
	hub         *ws.Hub
	alerts      *alerts.Handler
	unsubscribe func()
}

// NewBuilder wires the backend fetcher, page, controller and hub described
// by cfg
func NewBuilder(cfg *config.Config) (*Builder, error) {
	probes := ProbesFromConfig(cfg.Dashboard.Probes)
	fetcher, err := fetch.NewHTTPFetcher(
		cfg.Dashboard.BaseURL,
		time.Duration(cfg.Dashboard.RequestTimeout)*time.Second,
		fetch.WithKnownEndpoints(dash.KnownEndpoints(probes)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return NewBuilderWithFetcher(cfg, fetcher)
}

// NewBuilderWithFetcher is NewBuilder with a caller supplied backend client
func NewBuilderWithFetcher(cfg *config.Config, fetcher fetch.Fetcher) (*Builder, error) {
	probes := ProbesFromConfig(cfg.Dashboard.Probes)
	page, err := dash.NewDashboardPage(probes)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard page: %w", err)
	}

	opts := []dash.Option{dash.WithProbes(probes)}
	var alertHandler *alerts.Handler
	if cfg.Notifications.Email.Enabled {
		alertHandler = alerts.NewHandler(
			notifications.NewEmailManager(cfg),
			time.Duration(cfg.Notifications.Cooldown)*time.Second,
			cfg.AppName,
		)
		opts = append(opts, dash.WithHealthObserver(alertHandler.Observe))
		logger.Info("Component alerts enabled",
			logger.Strings("recipients", cfg.Notifications.Email.RecipientEmails))
	}

	controller := dash.NewController(page, fetcher, opts...)

	hub := ws.NewHub(originChecker(cfg))
	hub.SetGreeting(func() interface{} {
		return StateMessage{Type: "state", State: page.State()}
	})
	unsubscribe := page.Subscribe(func(ev dash.Event) {
		hub.BroadcastJSON(ev)
	})

	return &Builder{
		router:      New(cfg, controller, hub),
		controller:  controller,
		hub:         hub,
		alerts:      alertHandler,
		unsubscribe: unsubscribe,
	}, nil
}

// ProbesFromConfig converts configured probes to dashboard probes
func ProbesFromConfig(cfgProbes []config.ProbeConfig) []dash.Probe {
	probes := make([]dash.Probe, 0, len(cfgProbes))
	for _, p := range cfgProbes {
		probes = append(probes, dash.Probe{
			ControlID: p.ControlID,
			Label:     p.Label,
			Endpoint:  p.Endpoint,
			DisplayID: p.DisplayID,
		})
	}
	return probes
}

// originChecker enforces api.cors.allowed_origins on websocket upgrades
// when CORS is enabled with an explicit list
func originChecker(cfg *config.Config) func(r *http.Request) bool {
	if !cfg.API.CORS.Enabled || len(cfg.API.CORS.AllowedOrigins) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(cfg.API.CORS.AllowedOrigins))
	for _, o := range cfg.API.CORS.AllowedOrigins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed[origin] {
			return true
		}
		// same-origin pages are always welcome
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// WithMiddleware adds a middleware to the router
func (b *Builder) WithMiddleware(middleware gin.HandlerFunc) *Builder {
	b.router.engine.Use(middleware)
	return b
}

// WithAllRoutes adds all routes and initializes the router
func (b *Builder) WithAllRoutes() *Builder {
	b.router.Initialize()
	return b
}

// GetRouter returns the underlying router
func (b *Builder) GetRouter() *Router {
	return b.router
}

// Controller returns the dashboard controller
func (b *Builder) Controller() *dash.Controller {
	return b.controller
}

// Hub returns the websocket hub
func (b *Builder) Hub() *ws.Hub {
	return b.hub
}

// Start performs the initial snapshot refresh and serves HTTP. It blocks
// until the server stops.
func (b *Builder) Start() error {
	b.controller.Start()
	return b.router.Start()
}

// Shutdown stops auto refresh, disconnects websocket clients and drains the
// HTTP server
func (b *Builder) Shutdown() {
	b.controller.Shutdown()
	logger.Info("Stopped dashboard controller")

	b.unsubscribe()
	b.hub.CloseAll()

	if b.alerts != nil {
		b.alerts.Close()
		logger.Info("Stopped alert sender")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := b.router.Shutdown(ctx); err != nil {
		logger.Warn("HTTP server did not shut down cleanly", logger.Err(err))
	} else {
		logger.Info("Stopped HTTP server")
	}
}
