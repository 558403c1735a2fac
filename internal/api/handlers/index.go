package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"InfraDash/internal/dashboard"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"classes": func(c dashboard.Control) string { return strings.Join(c.Classes, " ") },
}).ParseFS(templateFS, "templates/index.html"))

type regionBlock struct {
	ID    string
	Class string
	Body  template.HTML
}

type probeBlock struct {
	Control dashboard.Control
	// Area is nil when an earlier probe already shows the shared area
	Area *regionBlock
}

type indexView struct {
	Title  string
	Toggle dashboard.Control
	Status []regionBlock
	Probes []probeBlock
}

func newRegionBlock(r dashboard.Region) regionBlock {
	body := template.HTML(template.HTMLEscapeString(r.Content))
	if r.HTML {
		// fragments are produced by the escaping renderer
		body = template.HTML(r.Content)
	}
	return regionBlock{ID: r.ID, Class: r.Class(), Body: body}
}

func (h *DashboardHandler) indexView() indexView {
	page := h.controller.Page()
	view := indexView{Title: h.appName}
	view.Toggle, _ = page.Control(dashboard.ToggleControlID)

	for _, id := range []string{
		dashboard.ServerRegionID,
		dashboard.RedisRegionID,
		dashboard.DatabaseRegionID,
		dashboard.ApplicationRegionID,
	} {
		if r, ok := page.Region(id); ok {
			view.Status = append(view.Status, newRegionBlock(r))
		}
	}

	shown := make(map[string]bool)
	for _, ctl := range page.State().Controls {
		if ctl.ID == dashboard.ToggleControlID {
			continue
		}
		block := probeBlock{Control: ctl}
		if p, ok := h.probe(ctl.ID); ok && !shown[p.DisplayID] {
			if r, ok := page.Region(p.DisplayID); ok {
				rb := newRegionBlock(r)
				block.Area = &rb
				shown[p.DisplayID] = true
			}
		}
		view.Probes = append(view.Probes, block)
	}
	return view
}

// Index serves the dashboard page with the current state baked in
func (h *DashboardHandler) Index(c *gin.Context) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, h.indexView()); err != nil {
		HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
