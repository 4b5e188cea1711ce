package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *zap.Logger
}

// NewJobManager creates a job manager for jobs. Nil jobs are skipped, which
// is how disabled jobs are left out.
func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	enabled := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if j != nil {
			enabled = append(enabled, j)
		}
	}
	return &JobManager{jobs: enabled, logger: logger}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are
// stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
		jm.started = append(jm.started, j)
	}
	jm.logger.Info("jobs started", zap.Int("count", len(jm.started)))
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
