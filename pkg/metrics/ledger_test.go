package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)

	m.MovePosted("receipt", "done")
	m.MovePosted("receipt", "done")
	m.Transition("draft", "ready")
	m.Adjustment(true)
	m.Adjustment(false)
	m.Adjustment(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.movesPosted.WithLabelValues("receipt", "done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("draft", "ready")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adjustments.WithLabelValues("applied")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.adjustments.WithLabelValues("noop")))
}

func TestLedgerMetrics_HTTPHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)
	m.ObserveHTTP("GET", "/api/dashboard", 200, 120*time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLedgerMetrics_NilEsNoop(t *testing.T) {
	var m *LedgerMetrics
	assert.NotPanics(t, func() {
		m.MovePosted("receipt", "done")
		m.Transition("draft", "done")
		m.Adjustment(true)
		m.ObserveHTTP("GET", "/", 200, time.Second)
	})
	empty := NewLedgerMetrics(nil)
	assert.NotPanics(t, func() { empty.MovePosted("", "") })
}
