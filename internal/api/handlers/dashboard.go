package handlers

import (
	"errors"
	"net/http"

	"InfraDash/internal/dashboard"
	"InfraDash/internal/dashboard/fetch"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the dashboard operations over HTTP
type DashboardHandler struct {
	controller *dashboard.Controller
	appName    string
}

// NewDashboardHandler creates a handler bound to controller
func NewDashboardHandler(controller *dashboard.Controller, appName string) *DashboardHandler {
	return &DashboardHandler{
		controller: controller,
		appName:    appName,
	}
}

// RegionView is a region plus the class the browser applies to it
type RegionView struct {
	dashboard.Region
	Class string `json:"class"`
}

// StateView is the JSON form of the whole page
type StateView struct {
	Polling  bool                `json:"polling"`
	Controls []dashboard.Control `json:"controls"`
	Regions  []RegionView        `json:"regions"`
}

// ProbeRequest is the body of an ad hoc probe
type ProbeRequest struct {
	Endpoint  string `json:"endpoint" binding:"required"`
	ControlID string `json:"control_id" binding:"required"`
	DisplayID string `json:"display_id" binding:"required"`
}

// ProbeResponse reports where a probe left its response area
type ProbeResponse struct {
	ControlID string           `json:"control_id"`
	DisplayID string           `json:"display_id"`
	Status    dashboard.Status `json:"status"`
	Kind      string           `json:"kind"`
	Content   string           `json:"content"`
}

func (h *DashboardHandler) state() StateView {
	s := h.controller.Page().State()
	regions := make([]RegionView, 0, len(s.Regions))
	for _, r := range s.Regions {
		regions = append(regions, RegionView{Region: r, Class: r.Class()})
	}
	return StateView{
		Polling:  h.controller.Polling(),
		Controls: s.Controls,
		Regions:  regions,
	}
}

// GetState returns every control and region
func (h *DashboardHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.state())
}

// GetRegion returns a single region by id
func (h *DashboardHandler) GetRegion(c *gin.Context) {
	id := c.Param("id")
	r, ok := h.controller.Page().Region(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown region: " + id})
		return
	}
	c.JSON(http.StatusOK, RegionView{Region: r, Class: r.Class()})
}

// TogglePolling flips auto refresh
func (h *DashboardHandler) TogglePolling(c *gin.Context) {
	active := h.controller.TogglePolling()
	c.JSON(http.StatusOK, gin.H{"polling": active})
}

// Refresh fetches and renders the status snapshot now. A failed refresh
// leaves the regions untouched and reports 502.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.controller.RefreshSnapshot(c.Request.Context()); err != nil {
		RespondError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, h.state())
}

// InvokeProbe runs the configured probe bound to the :control param
func (h *DashboardHandler) InvokeProbe(c *gin.Context) {
	controlID := c.Param("control")
	out, err := h.controller.InvokeProbe(c.Request.Context(), controlID)
	if err != nil {
		h.probeError(c, err)
		return
	}

	p, _ := h.probe(controlID)
	c.JSON(http.StatusOK, probeResponse(controlID, p.DisplayID, out))
}

// Invoke runs an ad hoc probe against any backend path
func (h *DashboardHandler) Invoke(c *gin.Context) {
	var req ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := fetch.ValidateEndpoint(req.Endpoint); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}

	out, err := h.controller.Invoke(c.Request.Context(), req.Endpoint, req.ControlID, req.DisplayID)
	if err != nil {
		h.probeError(c, err)
		return
	}
	c.JSON(http.StatusOK, probeResponse(req.ControlID, req.DisplayID, out))
}

func (h *DashboardHandler) probe(controlID string) (dashboard.Probe, bool) {
	for _, p := range h.controller.Probes() {
		if p.ControlID == controlID {
			return p, true
		}
	}
	return dashboard.Probe{}, false
}

func (h *DashboardHandler) probeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUnknownProbe), errors.Is(err, dashboard.ErrUnknownElement):
		RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, dashboard.ErrControlBusy):
		RespondError(c, http.StatusConflict, err)
	case errors.Is(err, dashboard.ErrNotResponseArea):
		RespondError(c, http.StatusBadRequest, err)
	default:
		HandleError(c, err)
	}
}

func probeResponse(controlID, displayID string, out *dashboard.Outcome) ProbeResponse {
	return ProbeResponse{
		ControlID: controlID,
		DisplayID: displayID,
		Status:    out.Status,
		Kind:      out.Kind(),
		Content:   out.Content,
	}
}
