package dashboard

import "fmt"

// Element ids shared with the page markup
const (
	ToggleControlID     = "autoRefreshBtn"
	ServerRegionID      = "serverInfo"
	RedisRegionID       = "redisStatus"
	DatabaseRegionID    = "dbStatus"
	ApplicationRegionID = "appStatus"
)

// Control labels and classes
const (
	StartLabel  = "Start Auto Refresh"
	StopLabel   = "Stop Auto Refresh"
	ActiveClass = "btn-warning"
	BusyClass   = "pulsing"
	ButtonClass = "btn"

	idleWord = "Test"
	busyWord = "Testing..."

	// LoadingText fills a response area while its probe is in flight
	LoadingText = "Loading..."
)

// Probe is a test button wired to a backend endpoint and the response area
// its result lands in
type Probe struct {
	ControlID string `json:"control_id"`
	Label     string `json:"label"`
	Endpoint  string `json:"endpoint"`
	DisplayID string `json:"display_id"`
}

// KnownEndpoints lists the status endpoint and every probe endpoint. These
// get their own metric series; anything else is counted as ad hoc.
func KnownEndpoints(probes []Probe) []string {
	endpoints := []string{StatusEndpoint}
	for _, p := range probes {
		if p.Endpoint != "" {
			endpoints = append(endpoints, p.Endpoint)
		}
	}
	return endpoints
}

// NewDashboardPage declares the toggle, the four status regions and one
// button plus response area per probe. Probes may share a response area,
// every other id must be unique across the page.
func NewDashboardPage(probes []Probe) (*Page, error) {
	used := map[string]string{ToggleControlID: "control"}
	statusRegions := []string{ServerRegionID, RedisRegionID, DatabaseRegionID, ApplicationRegionID}
	for _, id := range statusRegions {
		used[id] = "status region"
	}

	for _, probe := range probes {
		if probe.ControlID == "" || probe.DisplayID == "" {
			return nil, fmt.Errorf("probe %q needs a control id and a display id", probe.Label)
		}
		if kind, ok := used[probe.ControlID]; ok {
			return nil, fmt.Errorf("probe control id %q already used by a %s", probe.ControlID, kind)
		}
		used[probe.ControlID] = "control"
		if kind, ok := used[probe.DisplayID]; ok && kind != "response area" {
			return nil, fmt.Errorf("probe display id %q already used by a %s", probe.DisplayID, kind)
		}
		used[probe.DisplayID] = "response area"
	}

	p := NewPage()
	p.DeclareControl(ToggleControlID, StartLabel, ButtonClass)
	for _, id := range statusRegions {
		p.DeclareRegion(id, KindStatus)
	}
	for _, probe := range probes {
		p.DeclareControl(probe.ControlID, probe.Label, ButtonClass)
		if _, ok := p.Region(probe.DisplayID); !ok {
			p.DeclareRegion(probe.DisplayID, KindResponse)
		}
	}
	return p, nil
}
