package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dashboard:
  base_url: http://backend:8080
logs:
  enabled: false
`), 0644))

	a := New(path)
	require.NoError(t, a.Initialize())
	assert.True(t, a.IsRunning())
	assert.Equal(t, "http://backend:8080", a.GetConfig().Dashboard.BaseURL)
	assert.Equal(t, path, a.GetConfigPath())
}

func TestInitializeFailsOnMissingConfig(t *testing.T) {
	a := New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, a.Initialize())
	assert.False(t, a.IsRunning())
}
