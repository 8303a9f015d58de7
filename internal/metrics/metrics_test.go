package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_counters(t *testing.T) {
	m := New()
	m.IncFrame("analysis_result")
	m.IncFrame("analysis_result")
	m.IncFrameError("parse")
	m.IncRequest("sendMessage", true)
	m.IncRequest("PMDA", false)
	m.IncSession("completed")
	m.IncResult()
	m.IncConnectionError()

	body := scrape(t, m)
	assert.Contains(t, body, `recall_frames_total{kind="analysis_result"} 2`)
	assert.Contains(t, body, `recall_frame_errors_total{error_type="parse"} 1`)
	assert.Contains(t, body, `recall_requests_sent_total{action="PMDA",outcome="error"} 1`)
	assert.Contains(t, body, `recall_requests_sent_total{action="sendMessage",outcome="ok"} 1`)
	assert.Contains(t, body, `recall_sessions_total{event="completed"} 1`)
	assert.Contains(t, body, "recall_results_total 1")
	assert.Contains(t, body, "recall_connection_errors_total 1")
}

func TestMetrics_nilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncFrame("x")
		m.IncFrameError("x")
		m.IncRequest("x", true)
		m.IncSession("x")
		m.IncResult()
		m.IncConnectionError()
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
