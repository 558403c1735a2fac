package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration
type Config struct {
	AppName       string              `yaml:"app_name"`
	Server        ServerConfig        `yaml:"server"`
	Dashboard     DashboardConfig     `yaml:"dashboard"`
	Agent         AgentConfig         `yaml:"agent"`
	Logs          LogsConfig          `yaml:"logs"`
	API           API                 `yaml:"api"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// ServerConfig holds server related configuration
type ServerConfig struct {
	Port           int    `yaml:"port"`
	Host           string `yaml:"host"`
	ReadTimeout    int    `yaml:"read_timeout"`
	WriteTimeout   int    `yaml:"write_timeout"`
	IdleTimeout    int    `yaml:"idle_timeout"`
	MaxHeaderBytes int    `yaml:"max_header_bytes"`
}

// AgentConfig holds the credentials accepted by the login endpoint
type AgentConfig struct {
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

// LogsConfig holds logging configuration
type LogsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
	Format   string `yaml:"format"`
	Stdout   bool   `yaml:"stdout"`
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// LoadConfig loads the configuration from the specified file path.
// Values missing from the file keep their defaults.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path
func SaveConfig(cfg *Config, filePath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the fields the service cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Dashboard.BaseURL == "" {
		return fmt.Errorf("dashboard.base_url is required")
	}
	if c.Dashboard.RequestTimeout < 0 {
		return fmt.Errorf("dashboard.request_timeout must not be negative")
	}

	seen := make(map[string]bool)
	for _, p := range c.Dashboard.Probes {
		if p.ControlID == "" || p.DisplayID == "" || p.Endpoint == "" {
			return fmt.Errorf("probe %q needs control_id, display_id and endpoint", p.Label)
		}
		if seen[p.ControlID] {
			return fmt.Errorf("duplicate probe control_id: %s", p.ControlID)
		}
		seen[p.ControlID] = true
	}

	if c.API.Auth.Enabled {
		if c.API.Auth.JWTSecret == "" {
			return fmt.Errorf("api.auth.jwt_secret is required when auth is enabled")
		}
		if c.Agent.Auth.Pass == "" {
			return fmt.Errorf("agent.auth.pass is required when auth is enabled")
		}
	}
	return c.Notifications.validate()
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		AppName: "InfraDash",
		Server: ServerConfig{
			Port:         8090,
			Host:         "0.0.0.0",
			ReadTimeout:  15,
			WriteTimeout: 15,
			IdleTimeout:  60,
		},
		Dashboard: DashboardConfig{
			BaseURL: "http://127.0.0.1:8080",
			Probes:  DefaultProbes(),
		},
		Agent: AgentConfig{
			Auth: AuthConfig{
				User: "admin",
			},
		},
		Logs: LogsConfig{
			Enabled:  true,
			Level:    "info",
			FilePath: "logs",
			Format:   "json",
			Stdout:   true,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "infradash",
		},
		Notifications: NotificationsConfig{
			Cooldown: 300,
			Email: EmailConfig{
				SMTPPort:      587,
				UseTLS:        true,
				Timeout:       30,
				RetryCount:    2,
				RetryInterval: 5,
			},
		},
	}
}
