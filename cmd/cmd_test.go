package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/infrastructure/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"timestamp": "t0", "server": {"hostname": "app-1", "ip": "10.0.0.5"}, "components": {"redis": {"status": "error"}}}`))
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.HandleFunc("/api/cache/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "redis down"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, backendURL string, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dashboard:\n  base_url: "+backendURL+"\nlogs:\n  enabled: false\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", path))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestProbeConfiguredControl(t *testing.T) {
	srv := newBackend(t)

	out, err := run(t, srv.URL, "probe", "testHealthBtn")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"status\": \"healthy\"\n}\n", out)
}

func TestProbeAdHocEndpointFailure(t *testing.T) {
	srv := newBackend(t)

	out, err := run(t, srv.URL, "probe", "/api/cache/test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application")
	assert.Contains(t, out, "Error: redis down")
}

func TestSnapshotPrintsRegions(t *testing.T) {
	srv := newBackend(t)

	out, err := run(t, srv.URL, "snapshot")
	require.NoError(t, err)
	assert.Contains(t, out, "== serverInfo ==")
	assert.Contains(t, out, "app-1 (10.0.0.5)")
	assert.Contains(t, out, "❌ Redis Master")
}

func TestStatusWithoutDaemon(t *testing.T) {
	out, err := run(t, "http://127.0.0.1:1", "status", "--pid-file", filepath.Join(t.TempDir(), "x.pid"))
	require.NoError(t, err)
	assert.Contains(t, out, "not running")
}
