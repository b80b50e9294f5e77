package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPanelWarmup pre-builds the dashboard panels of one day.
	TaskPanelWarmup = "warroom:panels:warm"
)

// PanelWarmupPayload selects the day to warm. An empty Date means today in
// the worker's timezone. Refresh drops every cached panel first.
type PanelWarmupPayload struct {
	Date    string `json:"date,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

// NewPanelWarmupTask constructs an Asynq task.
func NewPanelWarmupTask(payload PanelWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("jobs: encode warmup payload: %w", err)
	}
	return asynq.NewTask(TaskPanelWarmup, data), nil
}
