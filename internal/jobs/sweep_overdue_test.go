package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSweeper struct {
	mock.Mock
}

func (m *mockSweeper) SweepOverdueInstallments(ctx context.Context, asOf time.Time) (int, error) {
	args := m.Called(ctx, asOf)
	return args.Int(0), args.Error(1)
}

func newTestJob(sweeper OverdueSweeper, now time.Time) *SweepOverdueJob {
	job := NewSweepOverdueJob(sweeper, nil)
	job.clock = func() time.Time { return now }
	return job
}

func TestNewSweepOverdueTask(t *testing.T) {
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	task, err := NewSweepOverdueTask(&asOf)
	require.NoError(t, err)
	assert.Equal(t, TaskSweepOverdue, task.Type())

	var payload SweepOverduePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "2025-03-01T00:00:00Z", payload.AsOf)

	task, err = NewSweepOverdueTask(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(task.Payload()))
}

func TestSweepOverdueJob_Handle(t *testing.T) {
	now := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)
	pinned := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults to the clock", func(t *testing.T) {
		sweeper := new(mockSweeper)
		sweeper.On("SweepOverdueInstallments", mock.Anything, now).Return(3, nil).Once()

		task, err := NewSweepOverdueTask(nil)
		require.NoError(t, err)
		require.NoError(t, newTestJob(sweeper, now).Handle(context.Background(), task))
		sweeper.AssertExpectations(t)
	})

	t.Run("uses the pinned date", func(t *testing.T) {
		sweeper := new(mockSweeper)
		sweeper.On("SweepOverdueInstallments", mock.Anything, pinned).Return(0, nil).Once()

		task, err := NewSweepOverdueTask(&pinned)
		require.NoError(t, err)
		require.NoError(t, newTestJob(sweeper, now).Handle(context.Background(), task))
		sweeper.AssertExpectations(t)
	})

	t.Run("malformed payload is not retried", func(t *testing.T) {
		sweeper := new(mockSweeper)
		task := asynq.NewTask(TaskSweepOverdue, []byte(`{"asOf":"yesterday"}`))

		err := newTestJob(sweeper, now).Handle(context.Background(), task)

		assert.ErrorIs(t, err, asynq.SkipRetry)
		sweeper.AssertNotCalled(t, "SweepOverdueInstallments", mock.Anything, mock.Anything)
	})

	t.Run("service failure is retried", func(t *testing.T) {
		sweeper := new(mockSweeper)
		sweeper.On("SweepOverdueInstallments", mock.Anything, now).Return(1, errors.New("connection reset")).Once()

		task, err := NewSweepOverdueTask(nil)
		require.NoError(t, err)
		err = newTestJob(sweeper, now).Handle(context.Background(), task)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}
