package telemetry

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	assert.NotNil(t, m.InputsTotal)
	assert.NotNil(t, m.ShotsConfirmed)
	assert.NotNil(t, m.ShotsCanceled)
	assert.NotNil(t, m.UndoTotal)
	assert.NotNil(t, m.StatsExports)
	assert.NotNil(t, m.SessionsKnown)
	assert.NotNil(t, m.TransportEvents)
}

func TestRecordingMethods(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordInput(OutcomeAccepted)
	m.RecordInput(OutcomeAccepted)
	m.RecordInput(OutcomeRejected)
	m.RecordConfirm("practice", "putt")
	m.RecordCancel("oncourse")
	m.RecordUndo(OutcomeRestored)
	m.RecordUndo(OutcomeEmpty)
	m.RecordExport()
	m.SetSessions(3)
	m.RecordTransportEvent("telegram", "update")

	families, err := reg.Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.Metric {
			switch {
			case metric.Counter != nil:
				got[*mf.Name] += *metric.Counter.Value
			case metric.Gauge != nil:
				got[*mf.Name] = *metric.Gauge.Value
			}
		}
	}

	assert.Equal(t, 3.0, got["caddie_inputs_total"])
	assert.Equal(t, 1.0, got["caddie_shots_confirmed_total"])
	assert.Equal(t, 1.0, got["caddie_shots_canceled_total"])
	assert.Equal(t, 2.0, got["caddie_undo_total"])
	assert.Equal(t, 1.0, got["caddie_stats_exports_total"])
	assert.Equal(t, 3.0, got["caddie_sessions_known"])
	assert.Equal(t, 1.0, got["caddie_transport_events_total"])
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	m.RecordInput(OutcomeControl)
	m.RecordConfirm("practice", "full swing")
	m.RecordCancel("practice")
	m.RecordUndo(OutcomeEmpty)
	m.RecordExport()
	m.SetSessions(0)
	m.RecordTransportEvent("slack", "event")
}

func TestStartMetricsServer(t *testing.T) {
	port := 9990

	go func() {
		// Use high port to avoid conflict
		_ = StartMetricsServer(port)
	}()

	// Poll until server is up or timeout
	deadline := time.Now().Add(2 * time.Second)
	var err error
	for time.Now().Before(deadline) {
		resp, reqErr := http.Get(fmt.Sprintf("http://localhost:%d/metrics", port))
		if reqErr == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				// A second call while running returns immediately.
				assert.NoError(t, StartMetricsServer(port))
				return
			}
		}
		err = reqErr
		time.Sleep(100 * time.Millisecond)
	}

	t.Logf("Failed to reach metrics server: %v", err)
	// Binding can be restricted in some environments; reaching the code path
	// is the best effort we make here.
}
