// Package jobs provides scheduled background tasks for the marketplace
// order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PayoutRetryJob - moves payouts stuck in failed back to processing, in
// bounded batches, acting as system:payout-retry
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	retry := jobs.NewPayoutRetryJob(retryHandler, "@every 5m", 100, time.Minute, logger)
//	jobManager := jobs.NewJobManager(logger, retry)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Runs never overlap: a run still in progress when the next one is due
// causes that next run to be skipped. Every run carries a deadline, so a
// hung database cannot hold the schedule forever.
//
// # Error Handling
//
// A failing run is logged and the job keeps its schedule. A batch is
// committed as a whole, so a failure leaves every order of the batch in
// failed for the next run.
package jobs
