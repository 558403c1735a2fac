package config

// DashboardConfig describes the backend the dashboard talks to and the
// probe buttons it shows
type DashboardConfig struct {
	BaseURL string `yaml:"base_url"`
	// RequestTimeout in seconds; 0 leaves backend requests unbounded
	RequestTimeout int           `yaml:"request_timeout"`
	Probes         []ProbeConfig `yaml:"probes"`
}

// ProbeConfig binds a test button to the endpoint it calls and the response
// area it writes into
type ProbeConfig struct {
	ControlID string `yaml:"control_id"`
	Label     string `yaml:"label"`
	Endpoint  string `yaml:"endpoint"`
	DisplayID string `yaml:"display_id"`
}

// DefaultProbes returns the test buttons exposed by the stock backend
func DefaultProbes() []ProbeConfig {
	return []ProbeConfig{
		{ControlID: "testCacheBtn", Label: "Test Redis Cache", Endpoint: "/api/cache/test", DisplayID: "cacheResponse"},
		{ControlID: "testDbBtn", Label: "Test Database", Endpoint: "/api/database/test", DisplayID: "dbResponse"},
		{ControlID: "testSessionBtn", Label: "Test Session Create", Endpoint: "/api/session/create", DisplayID: "sessionResponse"},
		{ControlID: "testLoadBtn", Label: "Test Load", Endpoint: "/api/load-test", DisplayID: "loadResponse"},
		{ControlID: "testHealthBtn", Label: "Test Health", Endpoint: "/health", DisplayID: "healthResponse"},
	}
}
