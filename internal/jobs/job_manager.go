package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	settlementResumeJob *SettlementResumeJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	settler commands.SettleOrderCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		settlementResumeJob: NewSettlementResumeJob(uowFactory, settler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.settlementResumeJob.Start(); err != nil {
		return fmt.Errorf("failed to start settlement resume job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.settlementResumeJob.Stop()
}
