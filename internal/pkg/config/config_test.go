package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
dashboard:
  base_url: http://backend:8080
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "http://backend:8080", cfg.Dashboard.BaseURL)
	assert.Len(t, cfg.Dashboard.Probes, len(DefaultProbes()))
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfigOverridesProbes(t *testing.T) {
	path := writeConfig(t, `
dashboard:
  base_url: http://backend:8080
  request_timeout: 3
  probes:
    - control_id: pingBtn
      label: Test Ping
      endpoint: /ping
      display_id: pingResponse
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Len(t, cfg.Dashboard.Probes, 1)
	assert.Equal(t, "pingBtn", cfg.Dashboard.Probes[0].ControlID)
	assert.Equal(t, 3, cfg.Dashboard.RequestTimeout)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"port":       "server:\n  port: 70000\n",
		"base url":   "dashboard:\n  base_url: \"\"\n",
		"timeout":    "dashboard:\n  request_timeout: -1\n",
		"duplicate":  "dashboard:\n  probes:\n    - {control_id: a, endpoint: /x, display_id: r1}\n    - {control_id: a, endpoint: /y, display_id: r2}\n",
		"incomplete": "dashboard:\n  probes:\n    - {control_id: a}\n",
		"auth":       "api:\n  auth:\n    enabled: true\n",
		"auth pass":  "api:\n  auth:\n    enabled: true\n    jwt_secret: x\n",
		"email":      "notifications:\n  email:\n    enabled: true\n    smtp_server: mail\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetDefaultConfig()
	cfg.Server.Port = 9191

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, loaded.Server.Port)
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "..", "conf", "config.yaml"))
	require.NoError(t, err)

	def := GetDefaultConfig()
	assert.Equal(t, def.Server.Port, cfg.Server.Port)
	assert.Equal(t, def.Dashboard.BaseURL, cfg.Dashboard.BaseURL)
	assert.Equal(t, def.Dashboard.Probes, cfg.Dashboard.Probes)
	assert.Equal(t, def.Notifications.Cooldown, cfg.Notifications.Cooldown)
	assert.False(t, cfg.Notifications.Email.Enabled)
	assert.Equal(t, 86400, cfg.API.Auth.JWTExpiration)
}
