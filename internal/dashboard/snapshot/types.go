package snapshot

import "encoding/json"

// StatusConnected is the only component status rendered as healthy
const StatusConnected = "connected"

// Snapshot is one payload of the backend's infrastructure status endpoint.
// Numeric fields keep the literal text the backend sent so cards show them
// exactly as received.
type Snapshot struct {
	Timestamp  string     `json:"timestamp"`
	Server     Server     `json:"server"`
	Components Components `json:"components"`
}

// Server identifies the backend node that answered
type Server struct {
	Hostname string `json:"hostname"`
	IP       string `json:"ip"`
}

// Components groups the per-subsystem health blocks
type Components struct {
	Redis       Redis       `json:"redis"`
	Database    Database    `json:"database"`
	Application Application `json:"application"`
}

// Redis health block. Only Status and Error are set when not connected.
type Redis struct {
	Status           string      `json:"status"`
	Host             string      `json:"host,omitempty"`
	Port             json.Number `json:"port,omitempty"`
	MemoryUsage      string      `json:"memory_usage,omitempty"`
	ConnectedClients json.Number `json:"connected_clients,omitempty"`
	KeysCount        json.Number `json:"keys_count,omitempty"`
	Error            string      `json:"error,omitempty"`
}

// Connected reports whether the block describes a live connection
func (r Redis) Connected() bool {
	return r.Status == StatusConnected
}

// Database health block. Only Status and Error are set when not connected.
type Database struct {
	Status string        `json:"status"`
	Host   string        `json:"host,omitempty"`
	Port   json.Number   `json:"port,omitempty"`
	Stats  DatabaseStats `json:"stats"`
	Error  string        `json:"error,omitempty"`
}

// Connected reports whether the block describes a live connection
func (d Database) Connected() bool {
	return d.Status == StatusConnected
}

type DatabaseStats struct {
	TotalUsers     json.Number `json:"total_users,omitempty"`
	ActiveSessions json.Number `json:"active_sessions,omitempty"`
	DatabaseSize   string      `json:"database_size,omitempty"`
}

// Application describes the backend process itself. It has no error form:
// if it can answer, it is up.
type Application struct {
	Status string           `json:"status"`
	Stats  ApplicationStats `json:"stats"`
}

type ApplicationStats struct {
	UptimeHuman       string      `json:"uptime_human"`
	Requests          json.Number `json:"requests"`
	RequestsPerMinute json.Number `json:"requests_per_minute"`
}
