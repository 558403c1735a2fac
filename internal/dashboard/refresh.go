package dashboard

import (
	"context"
	"encoding/json"
	"errors"

	"InfraDash/internal/dashboard/fetch"
	"InfraDash/internal/dashboard/render"
	"InfraDash/internal/dashboard/snapshot"
	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/pkg/metrics"
)

// RefreshSnapshot fetches the status snapshot and re-renders the server,
// Redis, database and application regions. On any failure it logs, leaves
// all four regions as they were and returns the error.
func (c *Controller) RefreshSnapshot(ctx context.Context) error {
	snap, err := c.loadSnapshot(ctx)
	if err != nil {
		metrics.RecordSnapshotRefresh(refreshResult(err))
		logger.Warn("Failed to load stats",
			logger.String("endpoint", StatusEndpoint),
			logger.Err(err))
		return err
	}

	c.renderSnapshot(snap)
	metrics.RecordSnapshotRefresh("success")
	return nil
}

func (c *Controller) loadSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	resp, err := c.fetcher.Get(ctx, StatusEndpoint)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		var body interface{}
		_ = json.Unmarshal(resp.Body, &body)
		return nil, &fetch.ApplicationError{
			Endpoint:   StatusEndpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	return snapshot.Decode(resp.Body)
}

func (c *Controller) renderSnapshot(snap *snapshot.Snapshot) {
	c.showFragment(ServerRegionID, c.renderer.RenderServerInfo(snap.Server, snap.Timestamp))

	c.showComponent("redis", RedisRegionID, c.renderer.RenderRedisStatus(snap.Components.Redis))
	c.showComponent("database", DatabaseRegionID, c.renderer.RenderDatabaseStatus(snap.Components.Database))
	c.showComponent("application", ApplicationRegionID, c.renderer.RenderApplicationStatus(snap.Components.Application))

	logger.Debug("Rendered status snapshot",
		logger.String("server", snap.Server.Hostname),
		logger.String("timestamp", snap.Timestamp))
}

func (c *Controller) showComponent(component, regionID string, f render.Fragment) {
	c.showFragment(regionID, f)
	metrics.SetComponentUp(component, f.Healthy)
	for _, obs := range c.health {
		obs(component, f.Healthy)
	}
}

func (c *Controller) showFragment(regionID string, f render.Fragment) {
	_ = c.page.SetRegion(regionID, string(f.HTML), true, "")
}

func refreshResult(err error) string {
	var appErr *fetch.ApplicationError
	switch {
	case fetch.IsNetworkError(err):
		return "network_error"
	case errors.As(err, &appErr):
		return "application_error"
	default:
		return "decode_error"
	}
}
