package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockRetryHandler struct{ mock.Mock }

func (m *MockRetryHandler) Handle(ctx context.Context, cmd commands.RetryFailedPayoutsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestPayoutRetryJob_RunsOnSchedule(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := &MockRetryHandler{}
	ran := make(chan struct{}, 1)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RetryFailedPayoutsCommand) bool {
		return cmd.BatchSize() == 25
	})).Run(func(mock.Arguments) {
		select {
		case ran <- struct{}{}:
		default:
		}
	}).Return(3, nil)

	job := jobs.NewPayoutRetryJob(handler, "@every 1s", 25, time.Minute, zap.New(core))
	require.NoError(t, job.Start())

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
	job.Stop()

	assert.GreaterOrEqual(t, logs.FilterMessage("failed payouts re-queued").Len(), 1)
}

func TestPayoutRetryJob_RunIsBoundedByTimeout(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := &MockRetryHandler{}
	finished := make(chan time.Duration, 1)
	handler.On("Handle", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		start := time.Now()
		<-ctx.Done()
		select {
		case finished <- time.Since(start):
		default:
		}
	}).Return(0, context.DeadlineExceeded)

	job := jobs.NewPayoutRetryJob(handler, "@every 1s", 10, 100*time.Millisecond, zap.New(core))
	require.NoError(t, job.Start())

	select {
	case waited := <-finished:
		assert.Less(t, waited, 2*time.Second)
	case <-time.After(5 * time.Second):
		t.Fatal("run was not cancelled")
	}
	job.Stop()

	assert.GreaterOrEqual(t, logs.FilterMessage("payout retry failed").Len(), 1)
}

func TestPayoutRetryJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewPayoutRetryJob(&MockRetryHandler{}, "every now and then", 10, 0, zap.NewNop())
	require.Error(t, job.Start())
}

func TestPayoutRetryJob_InvalidBatchSize(t *testing.T) {
	job := jobs.NewPayoutRetryJob(&MockRetryHandler{}, "@every 1m", commands.MaxRetryBatchSize+1, 0, zap.NewNop())
	require.Error(t, job.Start())
}

type fakeJob struct {
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeJob) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}

func (f *fakeJob) Stop() { f.stopped = true }

func TestJobManager(t *testing.T) {
	t.Run("starts and stops every job", func(t *testing.T) {
		a, b := &fakeJob{}, &fakeJob{}
		jm := jobs.NewJobManager(zap.NewNop(), a, nil, b)

		require.NoError(t, jm.StartAll())
		assert.True(t, a.started)
		assert.True(t, b.started)

		jm.StopAll()
		assert.True(t, a.stopped)
		assert.True(t, b.stopped)
	})

	t.Run("failed start stops the jobs already running", func(t *testing.T) {
		a, b := &fakeJob{}, &fakeJob{startErr: errors.New("bad schedule")}
		jm := jobs.NewJobManager(zap.NewNop(), a, b)

		err := jm.StartAll()

		require.ErrorContains(t, err, "bad schedule")
		assert.True(t, a.stopped)
		assert.False(t, b.stopped)
	})
}
