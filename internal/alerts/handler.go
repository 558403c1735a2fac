// Package alerts turns snapshot component health into operator alerts
package alerts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/sysinfo"
)

const (
	sendTimeout = 2 * time.Minute
	queueSize   = 32
)

// Alert is one notification about a component
type Alert struct {
	Type      AlertType
	Component string
	At        time.Time
	// Streak counts consecutive unhealthy refreshes
	Streak        int
	StatusChanged bool
}

// Subject is the notification's one-line summary
func (a Alert) Subject() string {
	name := strings.ToUpper(a.Component[:1]) + a.Component[1:]
	switch a.Type {
	case AlertTypeNormal:
		return fmt.Sprintf("%s recovered", name)
	case AlertTypeWarning:
		return fmt.Sprintf("%s is still down", name)
	default:
		return fmt.Sprintf("%s is down", name)
	}
}

type componentState struct {
	healthy   bool
	streak    int
	lastAlert time.Time
}

// Handler tracks component health across refreshes and notifies on change.
// Status changes always notify; a component that stays down is repeated
// at most once per cooldown.
type Handler struct {
	notifier NotificationManager
	cooldown time.Duration
	appName  string
	styles   map[AlertType]AlertStyle
	hostInfo func() (*sysinfo.HostInfo, error)
	now      func() time.Time

	mu         sync.Mutex
	components map[string]*componentState
	closed     bool
	// queue keeps alerts in the order they were raised
	queue chan Alert
	wg    sync.WaitGroup
}

// NewHandler creates an alert handler
func NewHandler(notifier NotificationManager, cooldown time.Duration, appName string) *Handler {
	h := &Handler{
		notifier:   notifier,
		cooldown:   cooldown,
		appName:    appName,
		styles:     DefaultStyles(),
		hostInfo:   sysinfo.GetHostInfo,
		now:        time.Now,
		components: make(map[string]*componentState),
		queue:      make(chan Alert, queueSize),
	}
	go h.run()
	return h
}

func (h *Handler) run() {
	for alert := range h.queue {
		h.dispatch(alert)
		h.wg.Done()
	}
}

// Observe records one refresh's verdict for component and queues an alert
// when one is due. A component first seen healthy produces nothing.
func (h *Handler) Observe(component string, healthy bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	alert, ok := h.evaluate(component, healthy)
	if !ok {
		return
	}

	logger.Warn("Component alert",
		logger.String("component", component),
		logger.String("type", string(alert.Type)),
		logger.Int("streak", alert.Streak))

	h.wg.Add(1)
	select {
	case h.queue <- alert:
	default:
		h.wg.Done()
		logger.Error("Alert queue full, dropping alert", logger.String("component", component))
	}
}

// evaluate must be called with h.mu held
func (h *Handler) evaluate(component string, healthy bool) (Alert, bool) {
	now := h.now()
	st, seen := h.components[component]
	if !seen {
		st = &componentState{healthy: true}
		h.components[component] = st
	}

	alert := Alert{Component: component, At: now}
	switch {
	case healthy && st.healthy:
		return Alert{}, false
	case healthy:
		st.healthy = true
		st.streak = 0
		alert.Type = AlertTypeNormal
		alert.StatusChanged = true
	case st.healthy:
		st.healthy = false
		st.streak = 1
		alert.Type = AlertTypeCritical
		alert.StatusChanged = true
	default:
		st.streak++
		if now.Sub(st.lastAlert) < h.cooldown {
			logger.Debug("Suppressing alert due to cooldown period",
				logger.String("component", component),
				logger.Int("streak", st.streak))
			return Alert{}, false
		}
		alert.Type = AlertTypeWarning
	}

	alert.Streak = st.streak
	st.lastAlert = now
	return alert, true
}

func (h *Handler) dispatch(alert Alert) {
	host, err := h.hostInfo()
	if err != nil {
		logger.Warn("Failed to get host information for alert", logger.Err(err))
		host = nil
	}

	body, err := CreateAlertHTML(alert, h.styles[alert.Type], h.appName, host)
	if err != nil {
		logger.Error("Failed to render alert", logger.Err(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := h.notifier.SendEmail(ctx, alert.Subject(), body); err != nil {
		logger.Error("Failed to send alert",
			logger.String("component", alert.Component),
			logger.Err(err))
	}
}

// Wait blocks until every alert already queued has been sent or failed
func (h *Handler) Wait() {
	h.wg.Wait()
}

// Close drains the queue and stops the sender. Later observations are
// ignored.
func (h *Handler) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.queue)
	h.mu.Unlock()

	h.wg.Wait()
}
