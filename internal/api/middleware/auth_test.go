package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"InfraDash/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(secret, PublicPaths...))
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UsernameKey))
	}
	r.GET("/", handler)
	r.GET("/api/dashboard/state", handler)
	r.GET("/ws/dashboard", handler)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicPathSkipsAuth(t *testing.T) {
	w := serve(newEngine(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMissingAndMalformedHeader(t *testing.T) {
	r := newEngine()

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/dashboard/state", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/state", nil)
	req.Header.Set("Authorization", "Token abc")
	w = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestValidBearerToken(t *testing.T) {
	token, err := jwt.GenerateToken("admin", secret, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/state", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(newEngine(), req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	token, err := jwt.GenerateToken("admin", "other", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/state", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(newEngine(), req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebSocketTokenFromQuery(t *testing.T) {
	token, err := jwt.GenerateToken("viewer", secret, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ws/dashboard?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	w := serve(newEngine(), req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "viewer", w.Body.String())

	// the query param is only honoured on upgrades
	req = httptest.NewRequest(http.MethodGet, "/api/dashboard/state?token="+token, nil)
	w = serve(newEngine(), req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
