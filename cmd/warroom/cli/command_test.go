package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/jobs"
)

type stubRunner struct {
	name    string
	payload jobs.PanelWarmupPayload
	stats   QueueStats
}

func (s *stubRunner) Trigger(ctx context.Context, name string, payload jobs.PanelWarmupPayload) (*asynq.TaskInfo, error) {
	s.name = name
	s.payload = payload
	return &asynq.TaskInfo{ID: "t-1", Queue: jobs.QueueDefault, Type: jobs.TaskPanelWarmup}, nil
}

func (s *stubRunner) InspectQueue(ctx context.Context) (QueueStats, error) {
	return s.stats, nil
}

func TestWarmCommand(t *testing.T) {
	runner := &stubRunner{}
	var out bytes.Buffer

	err := Run(context.Background(), runner, []string{"warm", "-date", "2024-05-15", "-refresh"}, &out)

	require.NoError(t, err)
	assert.Equal(t, JobPanelWarmup, runner.name)
	assert.Equal(t, jobs.PanelWarmupPayload{Date: "2024-05-15", Refresh: true}, runner.payload)
	assert.Equal(t, "enqueued warroom:panels:warm id=t-1 queue=default\n", out.String())
}

func TestWarmCommandRejectsBadDate(t *testing.T) {
	runner := &stubRunner{}

	err := Run(context.Background(), runner, []string{"warm", "-date", "yesterday"}, &bytes.Buffer{})

	assert.ErrorIs(t, err, period.ErrInvalidDate)
	assert.Empty(t, runner.name)
}

func TestQueueCommand(t *testing.T) {
	runner := &stubRunner{stats: QueueStats{Queue: "default", Pending: 2, Retry: 1}}
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), runner, []string{"queue"}, &out))

	assert.Equal(t, "queue=default pending=2 active=0 scheduled=0 retry=1\n", out.String())
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{nil, {"migrate"}, {"warm", "-force"}} {
		err := Run(context.Background(), &stubRunner{}, args, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrUsage, "args %v", args)
	}
}

func TestTriggerRejectsUnknownJob(t *testing.T) {
	c := NewJobsCLI("127.0.0.1:0")
	defer c.Close()

	_, err := c.Trigger(context.Background(), "gl-integrity", jobs.PanelWarmupPayload{})

	assert.ErrorContains(t, err, "unsupported job")
}
