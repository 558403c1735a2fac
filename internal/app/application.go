package app

import (
	"fmt"

	"InfraDash/internal/pkg/config"
	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/pkg/metrics"
)

// Application represents the main application
type Application struct {
	configPath string
	config     *config.Config
	isRunning  bool
}

// New creates a new application instance
func New(configPath string) *Application {
	return &Application{
		configPath: configPath,
		isRunning:  false,
	}
}

// Initialize loads configuration and initializes components
func (a *Application) Initialize() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.config = cfg

	// Initialize logger with loaded configuration
	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	metrics.Init(metrics.WithNamespace(cfg.Metrics.Namespace))

	logger.Info("Application initialized successfully",
		logger.String("backend", cfg.Dashboard.BaseURL),
		logger.Int("probes", len(cfg.Dashboard.Probes)))
	a.isRunning = true
	return nil
}

// GetConfig returns the application configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// GetConfigPath returns the path to the configuration file
func (a *Application) GetConfigPath() string {
	return a.configPath
}

// IsRunning reports whether Initialize succeeded and Shutdown has not run
func (a *Application) IsRunning() bool {
	return a.isRunning
}

// Shutdown performs cleanup and shutdown operations
func (a *Application) Shutdown() {
	logger.Info("Shutting down application...")

	a.isRunning = false
	logger.Info("Application shutdown complete")

	// Ensure logs are flushed
	if err := logger.Sync(); err != nil {
		fmt.Printf("Error flushing logs: %v\n", err)
	}
}
