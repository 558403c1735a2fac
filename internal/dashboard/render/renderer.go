// Package render turns status snapshot blocks into the HTML fragments shown
// in the dashboard's status regions.
package render

import (
	"bytes"
	"html/template"

	"InfraDash/internal/dashboard/snapshot"
	"InfraDash/internal/pkg/logger"
)

// Fragment is the new content of one status region
type Fragment struct {
	HTML template.HTML
	// Healthy is false only for an error card
	Healthy bool
}

// Renderer produces one fragment per status region from plain data
type Renderer interface {
	RenderServerInfo(server snapshot.Server, timestamp string) Fragment
	RenderRedisStatus(redis snapshot.Redis) Fragment
	RenderDatabaseStatus(db snapshot.Database) Fragment
	RenderApplicationStatus(app snapshot.Application) Fragment
}

// Card titles are trusted markup
const (
	RedisTitle       = "Redis Master"
	DatabaseTitle    = "PostgreSQL + pgpool"
	ApplicationTitle = "Application Server"

	// DefaultConnectionError is shown when a failed component gives no reason
	DefaultConnectionError = "Connection failed"
)

// HTMLRenderer renders fragments with html/template, so every value coming
// from the backend is escaped
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the fragment templates
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: template.Must(template.New("fragments").Parse(fragmentTemplates))}
}

type field struct {
	Name  string
	Value string
}

type card struct {
	Title   template.HTML
	Healthy bool
	Fields  []field
	Error   string
}

func (r *HTMLRenderer) RenderServerInfo(server snapshot.Server, timestamp string) Fragment {
	return r.execute("server", map[string]string{
		"Hostname":  server.Hostname,
		"IP":        server.IP,
		"Timestamp": timestamp,
	}, true)
}

func (r *HTMLRenderer) RenderRedisStatus(redis snapshot.Redis) Fragment {
	if !redis.Connected() {
		return r.errorCard(RedisTitle, redis.Error)
	}
	return r.execute("card", card{
		Title:   RedisTitle,
		Healthy: true,
		Fields: []field{
			{"Host", hostPort(redis.Host, redis.Port.String())},
			{"Memory", redis.MemoryUsage},
			{"Clients", redis.ConnectedClients.String()},
			{"Keys", redis.KeysCount.String()},
		},
	}, true)
}

func (r *HTMLRenderer) RenderDatabaseStatus(db snapshot.Database) Fragment {
	if !db.Connected() {
		return r.errorCard(DatabaseTitle, db.Error)
	}
	return r.execute("card", card{
		Title:   DatabaseTitle,
		Healthy: true,
		Fields: []field{
			{"Host", hostPort(db.Host, db.Port.String())},
			{"Users", db.Stats.TotalUsers.String()},
			{"Active Sessions", db.Stats.ActiveSessions.String()},
			{"DB Size", db.Stats.DatabaseSize},
		},
	}, true)
}

// RenderApplicationStatus always renders a healthy card; the backend
// answering the status request is proof enough that it is up.
func (r *HTMLRenderer) RenderApplicationStatus(app snapshot.Application) Fragment {
	return r.execute("card", card{
		Title:   ApplicationTitle,
		Healthy: true,
		Fields: []field{
			{"Status", app.Status},
			{"Uptime", app.Stats.UptimeHuman},
			{"Requests", app.Stats.Requests.String()},
			{"Req/min", app.Stats.RequestsPerMinute.String()},
		},
	}, true)
}

func (r *HTMLRenderer) errorCard(title template.HTML, reason string) Fragment {
	if reason == "" {
		reason = DefaultConnectionError
	}
	return r.execute("card", card{Title: title, Error: reason}, false)
}

func (r *HTMLRenderer) execute(name string, data interface{}, healthy bool) Fragment {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("Failed to render fragment",
			logger.String("template", name),
			logger.Err(err))
		return Fragment{HTML: template.HTML(template.HTMLEscapeString(err.Error()))}
	}
	return Fragment{HTML: template.HTML(buf.String()), Healthy: healthy}
}

func hostPort(host, port string) string {
	return host + ":" + port
}
