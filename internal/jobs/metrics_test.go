package jobmetrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rr := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestTrackerRecordsOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	assert.NoError(t, m.Track("panel_warmup").End(nil))
	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track("panel_warmup").End(boom), boom)

	body := scrape(t, reg)
	assert.Contains(t, body, `warroom_jobs_total{job="panel_warmup",status="success"} 1`)
	assert.Contains(t, body, `warroom_jobs_total{job="panel_warmup",status="failure"} 1`)
	assert.Contains(t, body, `warroom_jobs_failures_total{job="panel_warmup"} 1`)
	assert.Contains(t, body, `warroom_job_duration_seconds_count{job="panel_warmup"} 2`)
}

func TestAddWarmedPanels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.AddWarmedPanels(57)
	m.AddWarmedPanels(0)

	assert.Contains(t, scrape(t, reg), "warroom_panels_warmed_total 57")
}

func TestNilMetricsTracker(t *testing.T) {
	var m *Metrics
	err := errors.New("still returned")
	assert.Equal(t, err, m.Track("panel_warmup").End(err))
	m.AddWarmedPanels(3)
}
