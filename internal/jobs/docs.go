// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order settlement.
//
// # Available Jobs
//
// 1. SettlementResumeJob - Runs every ten seconds to re-enter settlement for
// delivered orders whose settlement was interrupted before completion
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(orderUoWFactory, settleHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The resume job uses the cron expression "*/10 * * * * *", running every ten
// seconds. Settlement steps are idempotent, so overlapping retries of the same
// order are harmless.
//
// # Error Handling
//
// - A failed settlement retry is logged and the rest of the batch continues
// - Failed job starts will stop any already running jobs
package jobs
