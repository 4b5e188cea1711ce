package jobs

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	pkglogger "marketplace/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RetryFailedPayoutsHandler is satisfied by commands.RetryFailedPayoutsCommandHandler.
type RetryFailedPayoutsHandler interface {
	Handle(ctx context.Context, cmd commands.RetryFailedPayoutsCommand) (int, error)
}

// PayoutRetryJob periodically moves payouts stuck in failed back to
// processing, one bounded batch per run.
type PayoutRetryJob struct {
	handler   RetryFailedPayoutsHandler
	schedule   string
	batchSize  int
	runTimeout time.Duration
	cron       *cron.Cron
	logger    *zap.Logger
}

// DefaultRunTimeout bounds a run when no timeout is configured.
const DefaultRunTimeout = time.Minute

// NewPayoutRetryJob creates the job. schedule is a standard five-field cron
// expression or a descriptor such as "@every 5m". Each run is cancelled
// after runTimeout; non-positive values select DefaultRunTimeout.
func NewPayoutRetryJob(
	handler RetryFailedPayoutsHandler, schedule string, batchSize int, runTimeout time.Duration, logger *zap.Logger,
) *PayoutRetryJob {
	if runTimeout <= 0 {
		runTimeout = DefaultRunTimeout
	}
	logger = logger.With(zap.String("component", "payout_retry_job"))
	cronLog := cron.PrintfLogger(pkglogger.NewPrintfAdapter(logger))

	return &PayoutRetryJob{
		handler:    handler,
		schedule:   schedule,
		batchSize:  batchSize,
		runTimeout: runTimeout,
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: logger,
	}
}

// Start registers the run on the schedule and starts the scheduler.
func (j *PayoutRetryJob) Start() error {
	cmd, err := commands.NewRetryFailedPayoutsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("payout retry job started", zap.String("schedule", j.schedule), zap.Int("batchSize", j.batchSize))
	return nil
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *PayoutRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("payout retry job stopped")
}

func (j *PayoutRetryJob) run(cmd commands.RetryFailedPayoutsCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), j.runTimeout)
	defer cancel()

	retried, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("payout retry failed", zap.Error(err))
		return
	}
	if retried > 0 {
		j.logger.Info("failed payouts re-queued", zap.Int("count", retried))
	}
}
