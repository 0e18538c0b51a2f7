package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// OverdueSweeper is the service operation the sweep task drives.
type OverdueSweeper interface {
	SweepOverdueInstallments(ctx context.Context, asOf time.Time) (int, error)
}

// SweepOverdueJob handles TaskSweepOverdue.
type SweepOverdueJob struct {
	Sweeper OverdueSweeper
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewSweepOverdueJob initialises the overdue sweep handler.
func NewSweepOverdueJob(sweeper OverdueSweeper, logger *slog.Logger) *SweepOverdueJob {
	return &SweepOverdueJob{
		Sweeper: sweeper,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle runs one sweep. Malformed payloads are not retried.
func (j *SweepOverdueJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Sweeper == nil {
		return errors.New("overdue sweep: handler not configured")
	}
	var payload SweepOverduePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("overdue sweep payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	start := j.clock()
	asOf := start
	if payload.AsOf != "" {
		parsed, err := time.Parse(time.RFC3339, payload.AsOf)
		if err != nil {
			return fmt.Errorf("overdue sweep asOf: %v: %w", err, asynq.SkipRetry)
		}
		asOf = parsed
	}

	logger := j.logger().With(slog.Time("as_of", asOf))
	logger.Info("starting overdue sweep")

	updated, err := j.Sweeper.SweepOverdueInstallments(ctx, asOf)
	if err != nil {
		logger.Error("overdue sweep failed", slog.Int("invoices_updated", updated), slog.Any("error", err))
		return err
	}

	logger.Info("completed overdue sweep",
		slog.Int("invoices_updated", updated),
		slog.Duration("duration", j.clock().Sub(start)),
	)
	return nil
}

func (j *SweepOverdueJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
