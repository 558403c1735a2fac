// Package dashboard owns the dashboard's page model and the operations that
// drive it: the auto refresh toggle, the status snapshot refresh and the
// generic endpoint probe.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"InfraDash/internal/dashboard/fetch"
	"InfraDash/internal/dashboard/render"
	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/pkg/metrics"
)

const (
	// PollInterval is the auto refresh period. It is deliberately fixed.
	PollInterval = 5000 * time.Millisecond

	// StatusEndpoint serves the status snapshot
	StatusEndpoint = "/api/infrastructure/status"
)

var (
	// ErrUnknownProbe is returned for a control id with no configured probe
	ErrUnknownProbe = errors.New("unknown probe")
	// ErrControlBusy is returned when the triggering control is disabled
	ErrControlBusy = errors.New("control is busy")
	// ErrNotResponseArea is returned when a probe targets a status region
	ErrNotResponseArea = errors.New("region is not a response area")
)

// Controller drives one dashboard page
type Controller struct {
	page      *Page
	fetcher   fetch.Fetcher
	renderer  render.Renderer
	scheduler Scheduler
	probes    map[string]Probe
	labels    *fetch.Labeler
	// health observers see every component's health after each render
	health []HealthObserver

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	session Session
}

// Option configures a Controller
type Option func(*Controller)

// WithScheduler replaces the ticker-based scheduler
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithRenderer replaces the html/template renderer
func WithRenderer(r render.Renderer) Option {
	return func(c *Controller) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithProbes registers the probes InvokeProbe can run by control id
func WithProbes(probes []Probe) Option {
	return func(c *Controller) {
		for _, p := range probes {
			c.probes[p.ControlID] = p
		}
	}
}

// HealthObserver is told whether a snapshot component rendered healthy
type HealthObserver func(component string, healthy bool)

// WithHealthObserver registers obs for component health after each refresh
func WithHealthObserver(obs HealthObserver) Option {
	return func(c *Controller) {
		if obs != nil {
			c.health = append(c.health, obs)
		}
	}
}

// NewController binds a page to a backend fetcher
func NewController(page *Page, fetcher fetch.Fetcher, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		page:      page,
		fetcher:   fetcher,
		renderer:  render.NewHTMLRenderer(),
		scheduler: TickerScheduler{},
		probes:    make(map[string]Probe),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.labels = fetch.NewLabeler(KnownEndpoints(c.Probes())...)
	return c
}

// Page returns the page the controller renders into
func (c *Controller) Page() *Page {
	return c.page
}

// Probes returns the configured probes in no particular order
func (c *Controller) Probes() []Probe {
	out := make([]Probe, 0, len(c.probes))
	for _, p := range c.probes {
		out = append(out, p)
	}
	return out
}

// Start performs the initial snapshot refresh in the background. It runs
// whether or not auto refresh is on.
func (c *Controller) Start() {
	go func() {
		_ = c.RefreshSnapshot(c.ctx)
	}()
}

// Shutdown stops auto refresh and cancels in-flight controller-owned work
func (c *Controller) Shutdown() {
	c.mu.Lock()
	if c.session.Active() {
		c.session.stop()
		metrics.SetPollingActive(false)
	}
	c.mu.Unlock()
	c.cancel()
}

// Polling reports whether auto refresh is running
func (c *Controller) Polling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Active()
}

// TogglePolling starts auto refresh when it is off and stops it when it is
// on, returning the new state. Calls strictly alternate, so there is never
// more than one live timer.
func (c *Controller) TogglePolling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.Active() {
		c.session.start(c.scheduler, PollInterval, func() {
			_ = c.RefreshSnapshot(c.ctx)
		})
		c.setToggle(StopLabel, true)
		logger.Info("Auto refresh started", logger.Duration("interval", PollInterval))
	} else {
		c.session.stop()
		c.setToggle(StartLabel, false)
		logger.Info("Auto refresh stopped")
	}

	metrics.SetPollingActive(c.session.Active())
	return c.session.Active()
}

func (c *Controller) setToggle(label string, active bool) {
	_ = c.page.UpdateControl(ToggleControlID, func(ctl *Control) {
		ctl.Label = label
		if active {
			ctl.AddClass(ActiveClass)
		} else {
			ctl.RemoveClass(ActiveClass)
		}
	})
}

// InvokeProbe runs the configured probe bound to controlID
func (c *Controller) InvokeProbe(ctx context.Context, controlID string) (*Outcome, error) {
	p, ok := c.probes[controlID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", controlID, ErrUnknownProbe)
	}
	return c.Invoke(ctx, p.Endpoint, p.ControlID, p.DisplayID)
}
