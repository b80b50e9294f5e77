package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/warroom/internal/jobs"
	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/internal/warroom"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// warmTimeout caps one warmup run.
const warmTimeout = 2 * time.Minute

type panelWarmer interface {
	Warm(ctx context.Context, date time.Time) (warroom.WarmResult, error)
	Invalidate(ctx context.Context) error
}

// PanelWarmupJob fills the panel cache ahead of the first dashboard visit.
type PanelWarmupJob struct {
	Service panelWarmer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewPanelWarmupJob wires dependencies for the warmup handler. clock decides
// which day counts as today; nil means UTC.
func NewPanelWarmupJob(service panelWarmer, logger *slog.Logger, metrics *jobmetrics.Metrics, clock func() time.Time) *PanelWarmupJob {
	return &PanelWarmupJob{Service: service, Logger: logger, Metrics: metrics, clock: clock}
}

// Handle processes TaskPanelWarmup tasks.
func (j *PanelWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("panel warmup: handler not configured")
	}
	var payload PanelWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("panel warmup: decode payload: %w: %w", err, asynq.SkipRetry)
	}
	_, err := j.Run(ctx, payload)
	return err
}

// Run executes one warmup synchronously.
func (j *PanelWarmupJob) Run(ctx context.Context, payload PanelWarmupPayload) (result warroom.WarmResult, resultErr error) {
	tracker := j.metrics().Track(TaskPanelWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	date := period.Truncate(j.now())
	if payload.Date != "" {
		parsed, err := period.ParseDate(payload.Date)
		if err != nil {
			// A malformed date never succeeds on retry.
			return result, fmt.Errorf("panel warmup: %w: %w", err, asynq.SkipRetry)
		}
		date = parsed
	}

	logger := j.logger().With(slog.String("date", period.FormatISO(date)), slog.Bool("refresh", payload.Refresh))
	logger.Info("starting panel warmup")
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, warmTimeout)
	defer cancel()

	if payload.Refresh {
		if err := j.Service.Invalidate(ctx); err != nil {
			logger.Error("panel warmup failed", slog.Any("error", err))
			return result, err
		}
	}
	result, err := j.Service.Warm(ctx, date)
	if err != nil {
		logger.Error("panel warmup failed", slog.Int("panels", result.Panels), slog.Any("error", err))
		return result, err
	}
	j.metrics().AddWarmedPanels(result.Panels)
	logger.Info("completed panel warmup", slog.Int("panels", result.Panels), slog.Duration("duration", time.Since(start)))
	return result, nil
}

func (j *PanelWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskPanelWarmup))
	}
	return slog.Default().With(slog.String("job", TaskPanelWarmup))
}

func (j *PanelWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *PanelWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
