// Package metrics provides Prometheus metrics for the desktop shell.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gruenerator_shell"

// Metrics holds all Prometheus metrics of the shell.
type Metrics struct {
	// Routing metrics
	MenuDispatches *prometheus.CounterVec
	TrayEvents     *prometheus.CounterVec
	DeepLinks      *prometheus.CounterVec
	Notifications  *prometheus.CounterVec

	// Lifecycle metrics
	StartupTransitions *prometheus.CounterVec
	Activations        prometheus.Counter

	// Update metrics
	UpdateChecks        *prometheus.CounterVec
	UpdateCheckDuration prometheus.Histogram

	// UI connections
	WebSocketClients prometheus.Gauge

	// System metrics
	Uptime     prometheus.Gauge
	GoRoutines prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.MenuDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_dispatches_total",
			Help:      "Menu activations by resulting action",
		},
		[]string{"action"},
	)

	m.TrayEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tray_events_total",
			Help:      "Tray icon clicks and menu activations",
		},
		[]string{"event"},
	)

	m.DeepLinks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deep_links_total",
			Help:      "Deep links received by routing result",
		},
		[]string{"result"},
	)

	m.Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications emitted to the UI",
		},
		[]string{"name"},
	)

	m.StartupTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "startup_transitions_total",
			Help:      "Splash to main transitions by trigger",
		},
		[]string{"trigger"},
	)

	m.Activations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activations_total",
			Help:      "Launches forwarded from later instances",
		},
	)

	m.UpdateChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "update_checks_total",
			Help:      "Update checks by outcome",
		},
		[]string{"outcome"},
	)

	m.UpdateCheckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_check_duration_seconds",
			Help:      "Duration of update checks",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	m.WebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Connected notification clients",
		},
	)

	m.Uptime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Shell uptime in seconds",
		},
	)

	m.GoRoutines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines",
			Help:      "Number of goroutines",
		},
	)

	m.registry.MustRegister(
		m.MenuDispatches,
		m.TrayEvents,
		m.DeepLinks,
		m.Notifications,
		m.StartupTransitions,
		m.Activations,
		m.UpdateChecks,
		m.UpdateCheckDuration,
		m.WebSocketClients,
		m.Uptime,
		m.GoRoutines,
	)

	m.registry.MustRegister(prometheus.NewGoCollector())
	m.registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	return m
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
