package startup

import (
	"fmt"
	"time"

	"InfraDash/internal/api/router"
	"InfraDash/internal/dashboard"
	"InfraDash/internal/dashboard/fetch"
	"InfraDash/internal/pkg/config"
	"InfraDash/internal/utils/finder"
)

// Ids used when a probe is run for an endpoint that no configured probe
// covers
const (
	AdHocControlID = "cliProbeBtn"
	AdHocDisplayID = "cliResponse"
)

// LoadConfig finds and loads configuration for the one-shot commands,
// falling back to defaults when no file exists
func LoadConfig(configPath string) (*config.Config, error) {
	path, err := finder.FindConfigFile(configPath, true)
	if err != nil {
		return config.GetDefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// NewOneShotController builds a controller for a single command run. An
// extra ad hoc probe is declared so arbitrary endpoints can be probed.
func NewOneShotController(cfg *config.Config) (*dashboard.Controller, error) {
	probes := router.ProbesFromConfig(cfg.Dashboard.Probes)
	fetcher, err := fetch.NewHTTPFetcher(
		cfg.Dashboard.BaseURL,
		time.Duration(cfg.Dashboard.RequestTimeout)*time.Second,
		fetch.WithKnownEndpoints(dashboard.KnownEndpoints(probes)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	probes = append(probes, dashboard.Probe{
		ControlID: AdHocControlID,
		Label:     "Test",
		DisplayID: AdHocDisplayID,
	})

	page, err := dashboard.NewDashboardPage(probes)
	if err != nil {
		return nil, err
	}
	return dashboard.NewController(page, fetcher, dashboard.WithProbes(probes)), nil
}
