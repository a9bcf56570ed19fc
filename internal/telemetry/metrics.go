package telemetry

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the collection of Prometheus instruments the bot exposes. All
// recording methods are safe on a nil receiver, so callers never need to
// guard for disabled telemetry.
type Metrics struct {
	InputsTotal     *prometheus.CounterVec
	ShotsConfirmed  *prometheus.CounterVec
	ShotsCanceled   *prometheus.CounterVec
	UndoTotal       *prometheus.CounterVec
	StatsExports    prometheus.Counter
	SessionsKnown   prometheus.Gauge
	TransportEvents *prometheus.CounterVec
}

// NewMetrics creates and registers all instruments. A nil registerer means
// the process-wide default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{}

	m.InputsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caddie_inputs_total",
			Help: "Total number of user inputs routed through the sequencer",
		},
		[]string{"outcome"},
	)

	m.ShotsConfirmed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caddie_shots_confirmed_total",
			Help: "Total number of confirmed shots",
		},
		[]string{"mode", "shot_type"},
	)

	m.ShotsCanceled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caddie_shots_canceled_total",
			Help: "Total number of canceled in-progress shots",
		},
		[]string{"mode"},
	)

	m.UndoTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caddie_undo_total",
			Help: "Total number of back actions",
		},
		[]string{"outcome"},
	)

	m.StatsExports = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "caddie_stats_exports_total",
			Help: "Total number of stats exports produced",
		},
	)

	m.SessionsKnown = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "caddie_sessions_known",
			Help: "Number of user sessions currently held in memory",
		},
	)

	m.TransportEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caddie_transport_events_total",
			Help: "Total number of transport-level events",
		},
		[]string{"transport", "type"},
	)

	reg.MustRegister(
		m.InputsTotal,
		m.ShotsConfirmed,
		m.ShotsCanceled,
		m.UndoTotal,
		m.StatsExports,
		m.SessionsKnown,
		m.TransportEvents,
	)

	return m
}

// Input outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeControl  = "control"
	OutcomeRestored = "restored"
	OutcomeEmpty    = "empty"
)

// RecordInput counts one routed input by outcome.
func (m *Metrics) RecordInput(outcome string) {
	if m == nil {
		return
	}
	m.InputsTotal.WithLabelValues(outcome).Inc()
}

// RecordConfirm counts one confirmed shot.
func (m *Metrics) RecordConfirm(mode, shotType string) {
	if m == nil {
		return
	}
	m.ShotsConfirmed.WithLabelValues(mode, shotType).Inc()
}

// RecordCancel counts one canceled shot.
func (m *Metrics) RecordCancel(mode string) {
	if m == nil {
		return
	}
	m.ShotsCanceled.WithLabelValues(mode).Inc()
}

// RecordUndo counts one back action by outcome.
func (m *Metrics) RecordUndo(outcome string) {
	if m == nil {
		return
	}
	m.UndoTotal.WithLabelValues(outcome).Inc()
}

// RecordExport counts one stats export.
func (m *Metrics) RecordExport() {
	if m == nil {
		return
	}
	m.StatsExports.Inc()
}

// SetSessions records the number of sessions held in memory.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.SessionsKnown.Set(float64(n))
}

// RecordTransportEvent counts one transport-level event.
func (m *Metrics) RecordTransportEvent(transport, typ string) {
	if m == nil {
		return
	}
	m.TransportEvents.WithLabelValues(transport, typ).Inc()
}

var (
	metricsMu      sync.Mutex
	metricsRunning bool
)

// StartMetricsServer exposes /metrics on the given port. Calling it while a
// server is already running returns nil immediately. On success it blocks.
func StartMetricsServer(port int) error {
	metricsMu.Lock()
	if metricsRunning {
		metricsMu.Unlock()
		return nil
	}
	metricsRunning = true
	metricsMu.Unlock()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	slog.Info("Starting metrics server", "addr", addr)
	err := http.ListenAndServe(addr, mux)

	metricsMu.Lock()
	metricsRunning = false
	metricsMu.Unlock()
	return err
}
