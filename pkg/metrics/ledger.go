// Package metrics expone contadores Prometheus del ledger de inventario y de la capa HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics registra eventos del ledger (movimientos, transiciones, ajustes) y latencias HTTP.
// Un *LedgerMetrics nil o construido sin registerer es un no-op.
type LedgerMetrics struct {
	movesPosted *prometheus.CounterVec
	transitions *prometheus.CounterVec
	adjustments *prometheus.CounterVec
	httpLatency *prometheus.HistogramVec
}

// NewLedgerMetrics registra las métricas en el registerer indicado.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	movesPosted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_moves_posted_total",
		Help: "Stock moves created, by type and initial status.",
	}, []string{"type", "status"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_move_transitions_total",
		Help: "Committed stock move status transitions.",
	}, []string{"from", "to"})
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Inventory adjustments by outcome (applied or noop).",
	}, []string{"outcome"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(movesPosted, transitions, adjustments, httpLatency)
	return &LedgerMetrics{
		movesPosted: movesPosted,
		transitions: transitions,
		adjustments: adjustments,
		httpLatency: httpLatency,
	}
}

// MovePosted cuenta un movimiento creado.
func (m *LedgerMetrics) MovePosted(moveType, status string) {
	if m == nil || m.movesPosted == nil {
		return
	}
	m.movesPosted.WithLabelValues(normalizeLabel(moveType), normalizeLabel(status)).Inc()
}

// Transition cuenta una transición de estado confirmada.
func (m *LedgerMetrics) Transition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// Adjustment cuenta un ajuste; applied=false cuando la diferencia fue cero.
func (m *LedgerMetrics) Adjustment(applied bool) {
	if m == nil || m.adjustments == nil {
		return
	}
	outcome := "noop"
	if applied {
		outcome = "applied"
	}
	m.adjustments.WithLabelValues(outcome).Inc()
}

// ObserveHTTP registra la latencia de una petición.
func (m *LedgerMetrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil || m.httpLatency == nil {
		return
	}
	m.httpLatency.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
