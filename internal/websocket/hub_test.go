package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func TestHubGreetsAndBroadcasts(t *testing.T) {
	hub := NewHub(nil)
	hub.SetGreeting(func() interface{} { return map[string]string{"type": "state"} })

	srv := httptest.NewServer(hub)
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)

	assert.JSONEq(t, `{"type":"state"}`, readText(t, a))
	assert.JSONEq(t, `{"type":"state"}`, readText(t, b))
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 5*time.Millisecond)

	hub.BroadcastJSON(map[string]string{"type": "region", "id": "serverInfo"})

	assert.JSONEq(t, `{"type":"region","id":"serverInfo"}`, readText(t, a))
	assert.JSONEq(t, `{"type":"region","id":"serverInfo"}`, readText(t, b))
}

func TestHubDropsClosedClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHubCloseAll(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	hub.CloseAll()
	assert.Equal(t, 0, hub.ClientCount())
}
