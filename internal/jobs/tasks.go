package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSweepOverdue flags pending installments past their due date as overdue.
	TaskSweepOverdue = "installments:sweep_overdue"
)

// SweepOverduePayload optionally pins the sweep date. An empty AsOf means the time the task runs.
type SweepOverduePayload struct {
	AsOf string `json:"asOf,omitempty"` // RFC 3339
}

// NewSweepOverdueTask constructs an Asynq task. A nil asOf leaves the date to the worker clock.
func NewSweepOverdueTask(asOf *time.Time) (*asynq.Task, error) {
	var payload SweepOverduePayload
	if asOf != nil {
		payload.AsOf = asOf.UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal sweep payload: %w", err)
	}
	return asynq.NewTask(TaskSweepOverdue, data, asynq.Queue(QueueDefault), asynq.Unique(time.Hour)), nil
}
