// Package metrics exposes Prometheus collectors for the search session and transport.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles Prometheus collectors for recall-stream.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	Registry           *prometheus.Registry
	FramesTotal        *prometheus.CounterVec
	FrameErrorsTotal   *prometheus.CounterVec
	RequestsSentTotal  *prometheus.CounterVec
	SessionsTotal      *prometheus.CounterVec
	ResultsTotal       prometheus.Counter
	ConnectionsErrored prometheus.Counter
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	frames := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recall_frames_total",
			Help: "Inbound frames classified, by kind.",
		},
		[]string{"kind"},
	)
	frameErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recall_frame_errors_total",
			Help: "Inbound frames dropped, by error type.",
		},
		[]string{"error_type"},
	)
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recall_requests_sent_total",
			Help: "Request frames sent, by action and outcome.",
		},
		[]string{"action", "outcome"},
	)
	sessions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recall_sessions_total",
			Help: "Search sessions by lifecycle event (submitted, rejected, completed, empty).",
		},
		[]string{"event"},
	)
	results := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recall_results_total",
			Help: "Analysis results accepted into a session.",
		},
	)
	connErrors := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recall_connection_errors_total",
			Help: "Transport-level errors reported by the connection.",
		},
	)

	registry.MustRegister(frames, frameErrors, requests, sessions, results, connErrors)

	return &Metrics{
		Registry:           registry,
		FramesTotal:        frames,
		FrameErrorsTotal:   frameErrors,
		RequestsSentTotal:  requests,
		SessionsTotal:      sessions,
		ResultsTotal:       results,
		ConnectionsErrored: connErrors,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// IncFrame counts a classified frame.
func (m *Metrics) IncFrame(kind string) {
	if m == nil {
		return
	}
	m.FramesTotal.WithLabelValues(kind).Inc()
}

// IncFrameError counts a dropped frame.
func (m *Metrics) IncFrameError(errorType string) {
	if m == nil {
		return
	}
	m.FrameErrorsTotal.WithLabelValues(errorType).Inc()
}

// IncRequest counts a request frame send attempt.
func (m *Metrics) IncRequest(action string, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.RequestsSentTotal.WithLabelValues(action, outcome).Inc()
}

// IncSession counts a session lifecycle event.
func (m *Metrics) IncSession(event string) {
	if m == nil {
		return
	}
	m.SessionsTotal.WithLabelValues(event).Inc()
}

// IncResult counts an accepted analysis result.
func (m *Metrics) IncResult() {
	if m == nil {
		return
	}
	m.ResultsTotal.Inc()
}

// IncConnectionError counts a transport error.
func (m *Metrics) IncConnectionError() {
	if m == nil {
		return
	}
	m.ConnectionsErrored.Inc()
}
