package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/pkg/metrics"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer is how many messages a client may lag behind before it is
	// dropped
	sendBuffer = 64
)

// Hub fans dashboard updates out to every connected browser
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	upgrader websocket.Upgrader
	// greeting builds the first message a new client receives
	greeting func() interface{}
}

// Client is one websocket connection. Only its write pump writes to conn.
type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// NewHub creates a hub. checkOrigin nil accepts every origin.
func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// SetGreeting sets the payload queued for each client as it connects.
// Anything broadcast after the greeting is built reaches the client after it.
func (h *Hub) SetGreeting(fn func() interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.greeting = fn
}

// ServeHTTP upgrades the request and holds the connection until the client
// goes away. Incoming messages are read and discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade to WebSocket connection", logger.Err(err))
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(client) {
		conn.Close()
		return
	}

	go h.writePump(client)
	h.readPump(client)
}

func (h *Hub) register(client *Client) bool {
	h.mu.Lock()
	if h.greeting != nil {
		data, err := json.Marshal(h.greeting())
		if err != nil {
			h.mu.Unlock()
			logger.Error("Failed to marshal WebSocket greeting", logger.Err(err))
			return false
		}
		client.send <- data
	}
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.SetWebSocketClients(count)
	return true
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	count := len(h.clients)
	h.mu.Unlock()

	client.close()
	if ok {
		metrics.SetWebSocketClients(count)
	}
}

func (h *Hub) readPump(client *Client) {
	defer func() {
		h.unregister(client)
		client.conn.Close()
	}()

	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("Error writing to WebSocket client", logger.Err(err))
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast queues message for every client. A client whose queue is full
// is disconnected rather than allowed to hold up the others.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	var lagging []*Client
	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			lagging = append(lagging, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range lagging {
		logger.Warn("Dropping lagging WebSocket client")
		h.unregister(c)
	}
}

// BroadcastJSON marshals v and broadcasts it
func (h *Hub) BroadcastJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to marshal WebSocket broadcast", logger.Err(err))
		return
	}
	h.Broadcast(data)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll disconnects every client
func (h *Hub) CloseAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.unregister(c)
	}
}
