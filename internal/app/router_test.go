package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/warroom/internal/observability"
	"github.com/odyssey-erp/warroom/internal/shared"
	"github.com/odyssey-erp/warroom/internal/view"
	"github.com/odyssey-erp/warroom/internal/warroom"
	warroomhttp "github.com/odyssey-erp/warroom/internal/warroom/http"
	"github.com/odyssey-erp/warroom/jobs"
)

var csrfMeta = regexp.MustCompile(`name="csrf-token" content="([^"]+)"`)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, RateLimitPerMinute: 1000}

	templates, err := view.NewEngine()
	require.NoError(t, err)
	metrics := observability.NewMetrics()
	sessions := shared.NewSessionManager(client, "warroom_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrfsecret")
	service := warroom.NewService(warroom.NewCache(client, time.Minute), logger, metrics)
	clock := func() time.Time { return time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC) }

	return NewRouter(RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessions,
		CSRFManager:      csrf,
		DashboardHandler: warroomhttp.NewHandler(logger, service, templates, csrf, clock, metrics),
		JobHandler:       jobs.NewHandler(nil, logger),
		Metrics:          metrics,
	})
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Empty(t, rr.Result().Cookies(), "probes should not open sessions")
}

func TestStaticAssetsAreCached(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/static/css/warroom.css", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")
}

func TestActionsRequireCSRF(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/actions/theme", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := serve(router, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDashboardSessionFlow(t *testing.T) {
	router := newTestRouter(t)

	page := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, page.Code)
	assert.Equal(t, "DENY", page.Header().Get("X-Frame-Options"))
	cookies := page.Result().Cookies()
	require.NotEmpty(t, cookies)
	match := csrfMeta.FindStringSubmatch(page.Body.String())
	require.Len(t, match, 2, "csrf token should be rendered")

	form := url.Values{shared.CSRFFormField: {match[1]}, "value": {"quarter"}}
	req := httptest.NewRequest(http.MethodPost, "/actions/granularity", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookies[0])
	rr := serve(router, req)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/actions/theme", nil)
	req.Header.Set(shared.CSRFHeader, match[1])
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookies[0])
	rr = serve(router, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.AddCookie(cookies[0])
	rr = serve(router, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var state struct {
		ViewModel struct {
			Label string `json:"label"`
		} `json:"view_model"`
		UI struct {
			DarkMode bool `json:"dark_mode"`
		} `json:"ui"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, "2024/Q2", state.ViewModel.Label)
	assert.True(t, state.UI.DarkMode)

	metrics := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metrics.Body.String(), `warroom_selection_transitions_total{action="granularity",changed="true"} 1`)
}

func TestJobsHealthMounted(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"queue":"default"`)
}
