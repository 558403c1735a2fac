// Package metrics exposes Prometheus metrics for the dashboard poller and
// probes.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const subsystem = "dashboard"

// Manager owns every collector and the registry they live on
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	snapshotRefreshes *prometheus.CounterVec
	probes            *prometheus.CounterVec
	fetchLatency      *prometheus.HistogramVec
	pollingActive     prometheus.Gauge
	componentUp       *prometheus.GaugeVec
	wsClients         prometheus.Gauge
}

var (
	mu            sync.RWMutex
	globalManager = NewManager()
)

// NewManager creates a manager on a private registry unless one is supplied
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "infradash",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.snapshotRefreshes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "snapshot_refreshes_total",
		Help:      "Status snapshot refresh cycles by result",
	}, []string{"result"})

	m.probes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "probes_total",
		Help:      "Probe invocations by final classification",
	}, []string{"endpoint", "status"})

	m.fetchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "backend_fetch_seconds",
		Help:      "Latency of backend requests",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})

	m.pollingActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "polling_active",
		Help:      "1 while auto refresh is running",
	})

	m.componentUp = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "component_up",
		Help:      "Health of each component in the last rendered snapshot",
	}, []string{"component"})

	m.wsClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "websocket_clients",
		Help:      "Connected websocket clients",
	})
}

// Registry returns the registry backing this manager
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the manager's registry in the Prometheus text format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Init replaces the global manager, typically once config is loaded
func Init(opts ...Option) *Manager {
	m := NewManager(opts...)
	mu.Lock()
	globalManager = m
	mu.Unlock()
	return m
}

// Default returns the global manager
func Default() *Manager {
	mu.RLock()
	defer mu.RUnlock()
	return globalManager
}

// RecordSnapshotRefresh counts one refresh cycle outcome
func RecordSnapshotRefresh(result string) {
	Default().snapshotRefreshes.WithLabelValues(result).Inc()
}

// RecordProbe counts one probe invocation
func RecordProbe(endpoint, status string) {
	Default().probes.WithLabelValues(endpoint, status).Inc()
}

// ObserveFetch records the latency of one backend request
func ObserveFetch(endpoint string, d time.Duration) {
	Default().fetchLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// SetPollingActive reflects the auto refresh toggle
func SetPollingActive(active bool) {
	v := 0.0
	if active {
		v = 1
	}
	Default().pollingActive.Set(v)
}

// SetComponentUp reflects one component card of the last snapshot
func SetComponentUp(component string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	Default().componentUp.WithLabelValues(component).Set(v)
}

// SetWebSocketClients reports the current websocket client count
func SetWebSocketClients(n int) {
	Default().wsClients.Set(float64(n))
}
