package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"InfraDash/internal/api/handlers"
	dash "InfraDash/internal/dashboard"
	"InfraDash/internal/pkg/config"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusBody = `{
  "timestamp": "2025-01-02T03:04:05",
  "server": {"hostname": "app-1", "ip": "10.0.0.5"},
  "components": {
    "redis": {"status": "connected", "host": "10.0.0.7", "port": 6379, "memory_usage": "1.02M", "connected_clients": 4, "keys_count": 17},
    "database": {"status": "error", "error": "pgpool down"},
    "application": {"status": "running", "stats": {"uptime_human": "1h 5m", "requests": 120, "requests_per_minute": 1.84}}
  }
}`

// backend stands in for the infrastructure API the dashboard polls
type backend struct {
	*httptest.Server
	statusOK atomic.Bool
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	b.statusOK.Store(true)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/infrastructure/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !b.statusOK.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": "maintenance"}`))
			return
		}
		_, _ = w.Write([]byte(statusBody))
	})
	mux.HandleFunc("/api/cache/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "not found"}`))
	})
	mux.HandleFunc("/api/database/test", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ok", "rows": 2}`))
	})
	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

func newTestBuilder(t *testing.T, mutate func(*config.Config)) (*Builder, *backend) {
	t.Helper()
	be := newBackend(t)

	cfg := config.GetDefaultConfig()
	cfg.Dashboard.BaseURL = be.URL
	cfg.Dashboard.RequestTimeout = 5
	if mutate != nil {
		mutate(cfg)
	}

	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	b.WithAllRoutes()
	t.Cleanup(b.Shutdown)
	return b, be
}

func do(b *Builder, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	b.GetRouter().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	b, _ := newTestBuilder(t, nil)
	w := do(b, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

func TestStateListsPage(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodGet, "/api/dashboard/state", "")
	require.Equal(t, http.StatusOK, w.Code)

	var state handlers.StateView
	decode(t, w, &state)
	assert.False(t, state.Polling)
	require.NotEmpty(t, state.Controls)
	assert.Equal(t, dash.ToggleControlID, state.Controls[0].ID)
	assert.Equal(t, dash.StartLabel, state.Controls[0].Label)

	classes := map[string]string{}
	for _, r := range state.Regions {
		classes[r.ID] = r.Class
	}
	assert.Equal(t, "status-region", classes[dash.ServerRegionID])
	assert.Equal(t, "response-area info", classes["cacheResponse"])
}

func TestRegionLookup(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodGet, "/api/dashboard/regions/dbResponse", "")
	require.Equal(t, http.StatusOK, w.Code)
	var region handlers.RegionView
	decode(t, w, &region)
	assert.Equal(t, dash.KindResponse, region.Kind)

	w = do(b, http.MethodGet, "/api/dashboard/regions/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleAlternates(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodPost, "/api/dashboard/toggle", "")
	assert.JSONEq(t, `{"polling": true}`, w.Body.String())
	ctl, _ := b.Controller().Page().Control(dash.ToggleControlID)
	assert.Equal(t, dash.StopLabel, ctl.Label)

	w = do(b, http.MethodPost, "/api/dashboard/toggle", "")
	assert.JSONEq(t, `{"polling": false}`, w.Body.String())
	assert.False(t, b.Controller().Polling())
}

func TestRefreshRendersRegions(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodPost, "/api/dashboard/refresh", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	server, _ := b.Controller().Page().Region(dash.ServerRegionID)
	assert.Contains(t, server.Content, "app-1 (10.0.0.5)")
	redis, _ := b.Controller().Page().Region(dash.RedisRegionID)
	assert.Contains(t, redis.Content, "status-connected")
	db, _ := b.Controller().Page().Region(dash.DatabaseRegionID)
	assert.Contains(t, db.Content, "<p>Error: pgpool down</p>")
}

func TestFailedRefreshKeepsRegions(t *testing.T) {
	b, be := newTestBuilder(t, nil)
	require.Equal(t, http.StatusOK, do(b, http.MethodPost, "/api/dashboard/refresh", "").Code)
	before := b.Controller().Page().State()

	be.statusOK.Store(false)
	w := do(b, http.MethodPost, "/api/dashboard/refresh", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, before, b.Controller().Page().State())
}

func TestInvokeConfiguredProbe(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodPost, "/api/dashboard/probes/testCacheBtn", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp handlers.ProbeResponse
	decode(t, w, &resp)
	assert.Equal(t, "cacheResponse", resp.DisplayID)
	assert.Equal(t, dash.StatusError, resp.Status)
	assert.Equal(t, "application", resp.Kind)
	assert.Equal(t, "Error: not found", resp.Content)

	w = do(b, http.MethodPost, "/api/dashboard/probes/noSuchBtn", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvokeAdHocProbe(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodPost, "/api/dashboard/probe",
		`{"endpoint": "/api/database/test", "control_id": "testLoadBtn", "display_id": "loadResponse"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp handlers.ProbeResponse
	decode(t, w, &resp)
	assert.Equal(t, dash.StatusSuccess, resp.Status)
	assert.Equal(t, "{\n  \"status\": \"ok\",\n  \"rows\": 2\n}", resp.Content)

	cases := map[string]struct {
		body string
		code int
	}{
		"absolute endpoint": {`{"endpoint": "http://evil/x", "control_id": "testLoadBtn", "display_id": "loadResponse"}`, http.StatusBadRequest},
		"missing field":     {`{"endpoint": "/x", "control_id": "testLoadBtn"}`, http.StatusBadRequest},
		"unknown control":   {`{"endpoint": "/x", "control_id": "nope", "display_id": "loadResponse"}`, http.StatusNotFound},
		"status region":     {`{"endpoint": "/x", "control_id": "testLoadBtn", "display_id": "serverInfo"}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(b, http.MethodPost, "/api/dashboard/probe", tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}
}

func TestIndexRendersShell(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="autoRefreshBtn"`)
	assert.Contains(t, body, "Test Redis Cache")
	assert.Contains(t, body, `id="cacheResponse" class="response-area info"`)
}

func TestMetricsEndpoint(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboard_polling_active")
}

func TestAuthGuardsAPI(t *testing.T) {
	b, _ := newTestBuilder(t, func(cfg *config.Config) {
		cfg.API.Auth.Enabled = true
		cfg.API.Auth.JWTSecret = "s3cret"
		cfg.Agent.Auth.Pass = "hunter2"
	})

	assert.Equal(t, http.StatusUnauthorized, do(b, http.MethodGet, "/api/dashboard/state", "").Code)
	assert.Equal(t, http.StatusOK, do(b, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(b, http.MethodGet, "/metrics", "").Code)

	w := do(b, http.MethodPost, "/api/auth/login", `{"username": "admin", "password": "hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)

	w = do(b, http.MethodGet, "/api/dashboard/state", "", "Authorization", "Bearer "+login.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	b, _ := newTestBuilder(t, func(cfg *config.Config) {
		cfg.API.CORS.Enabled = true
		cfg.API.CORS.AllowedOrigins = []string{"http://ops.example"}
	})

	w := do(b, http.MethodOptions, "/api/dashboard/state", "",
		"Origin", "http://ops.example",
		"Access-Control-Request-Method", http.MethodGet)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://ops.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocketPushesMutations(t *testing.T) {
	b, _ := newTestBuilder(t, nil)
	srv := httptest.NewServer(b.GetRouter())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/dashboard", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() map[string]interface{} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg map[string]interface{}
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	greeting := read()
	assert.Equal(t, "state", greeting["type"])

	require.Equal(t, http.StatusOK, do(b, http.MethodPost, "/api/dashboard/toggle", "").Code)
	msg := read()
	assert.Equal(t, dash.EventControl, msg["type"])
	control := msg["control"].(map[string]interface{})
	assert.Equal(t, dash.StopLabel, control["label"])
}

func TestAlertsOnlyWhenEmailEnabled(t *testing.T) {
	b, _ := newTestBuilder(t, nil)
	assert.Nil(t, b.alerts)

	b, _ = newTestBuilder(t, func(cfg *config.Config) {
		email := &cfg.Notifications.Email
		email.Enabled = true
		email.SMTPServer = "127.0.0.1"
		email.SMTPPort = 1
		email.UseTLS = false
		email.SenderEmail = "dash@example.com"
		email.RecipientEmails = []string{"ops@example.com"}
		email.Timeout = 1
		email.RetryCount = 0
		email.RetryInterval = 0
	})
	require.NotNil(t, b.alerts)

	// The database component is down in the snapshot, the send itself fails
	w := do(b, http.MethodPost, "/api/dashboard/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	b.alerts.Wait()
}

func TestHostResourcesRoute(t *testing.T) {
	b, _ := newTestBuilder(t, nil)

	w := do(b, http.MethodGet, "/api/dashboard/host/resources", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"memory"`)
	assert.Contains(t, w.Body.String(), `"mount":"/"`)
}
