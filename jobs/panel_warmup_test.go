package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/odyssey-erp/warroom/internal/jobs"
	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/internal/warroom"
)

type fakeWarmer struct {
	warmed      []time.Time
	invalidated int
	warmErr     error
}

func (f *fakeWarmer) Warm(ctx context.Context, date time.Time) (warroom.WarmResult, error) {
	f.warmed = append(f.warmed, date)
	if f.warmErr != nil {
		return warroom.WarmResult{}, f.warmErr
	}
	return warroom.WarmResult{Date: period.FormatISO(date), Panels: 57}, nil
}

func (f *fakeWarmer) Invalidate(ctx context.Context) error {
	f.invalidated++
	return nil
}

func newTestJob(svc panelWarmer) *PanelWarmupJob {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return time.Date(2024, 5, 15, 23, 50, 0, 0, time.UTC) }
	return NewPanelWarmupJob(svc, logger, jobmetrics.NewMetrics(prometheus.NewRegistry()), clock)
}

func TestPanelWarmupDefaultsToToday(t *testing.T) {
	svc := &fakeWarmer{}
	job := newTestJob(svc)

	task, err := NewPanelWarmupTask(PanelWarmupPayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	require.Len(t, svc.warmed, 1)
	assert.Equal(t, "2024-05-15", period.FormatISO(svc.warmed[0]))
	assert.Zero(t, svc.invalidated)
}

func TestPanelWarmupExplicitDateWithRefresh(t *testing.T) {
	svc := &fakeWarmer{}
	job := newTestJob(svc)

	result, err := job.Run(context.Background(), PanelWarmupPayload{Date: "2024-04-01", Refresh: true})

	require.NoError(t, err)
	assert.Equal(t, 57, result.Panels)
	assert.Equal(t, 1, svc.invalidated)
	assert.Equal(t, "2024-04-01", period.FormatISO(svc.warmed[0]))
}

func TestPanelWarmupRejectsBadPayload(t *testing.T) {
	job := newTestJob(&fakeWarmer{})

	err := job.Handle(context.Background(), asynq.NewTask(TaskPanelWarmup, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	_, err = job.Run(context.Background(), PanelWarmupPayload{Date: "15/05/2024"})
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, period.ErrInvalidDate)
}

func TestPanelWarmupPropagatesFailure(t *testing.T) {
	boom := errors.New("redis gone")
	job := newTestJob(&fakeWarmer{warmErr: boom})

	_, err := job.Run(context.Background(), PanelWarmupPayload{})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestPanelWarmupAgainstService(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := warroom.NewService(warroom.NewCache(client, time.Minute), slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	job := newTestJob(svc)

	result, err := job.Run(context.Background(), PanelWarmupPayload{Refresh: true})

	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", result.Date)
	assert.Equal(t, 57, result.Panels)
	assert.True(t, mr.Exists("warroom:panel:presence:2024-05-15:all:1"))
}

func TestPanelWarmupNotConfigured(t *testing.T) {
	var job *PanelWarmupJob
	task, err := NewPanelWarmupTask(PanelWarmupPayload{})
	require.NoError(t, err)
	assert.Error(t, job.Handle(context.Background(), task))
}

func TestNewPanelWarmupTaskPayload(t *testing.T) {
	task, err := NewPanelWarmupTask(PanelWarmupPayload{Date: "2024-05-15"})
	require.NoError(t, err)

	assert.Equal(t, TaskPanelWarmup, task.Type())
	var decoded PanelWarmupPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, "2024-05-15", decoded.Date)
	assert.False(t, decoded.Refresh)
}

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) {
	return s.info, s.err
}

func TestJobsHealth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cases := []struct {
		name    string
		handler *Handler
		code    int
		pending int
	}{
		{name: "no inspector", handler: NewHandler(nil, logger), code: http.StatusOK},
		{name: "queue info", handler: &Handler{inspector: stubInspector{info: &asynq.QueueInfo{Queue: QueueDefault, Pending: 4}}, logger: logger}, code: http.StatusOK, pending: 4},
		{name: "redis down", handler: &Handler{inspector: stubInspector{err: errors.New("dial")}, logger: logger}, code: http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			tc.handler.MountRoutes(r)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tc.code, rr.Code)
			if tc.code != http.StatusOK {
				return
			}
			var body queueHealth
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, QueueDefault, body.Queue)
			assert.Equal(t, tc.pending, body.Pending)
		})
	}
}
