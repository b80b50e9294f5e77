package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/api/view")

	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	body := scrape(t, metrics)
	if !strings.Contains(body, `warroom_http_requests_total{code="418",route="/api/view"} 1`) {
		t.Fatalf("expected metrics to record request, got: %s", body)
	}
	if !strings.Contains(body, `warroom_http_request_duration_seconds_bucket{route="/api/view"`) {
		t.Fatalf("expected duration histogram to be present, got: %s", body)
	}
}

func TestMetricsRecordDashboardEvents(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordTransition("granularity", true)
	metrics.RecordTransition("unit", false)
	metrics.RecordTransition("unit", false)
	metrics.RecordPanelCache("availability", "hit")

	body := scrape(t, metrics)
	for _, want := range []string{
		`warroom_selection_transitions_total{action="granularity",changed="true"} 1`,
		`warroom_selection_transitions_total{action="unit",changed="false"} 2`,
		`warroom_panel_cache_total{outcome="hit",view="availability"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics, got: %s", want, body)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *Metrics
	metrics.RecordTransition("theme", true)
	metrics.RecordPanelCache("care", "miss")

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from nil metrics, got %d", rr.Code)
	}
}
