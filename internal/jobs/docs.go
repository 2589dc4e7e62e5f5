// Package jobs provides scheduled background tasks for the assignment
// lifecycle service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the synchronous flows must not retry
// themselves.
//
// # Available Jobs
//
// 1. EarningsReconciliationJob - Periodically applies earnings credits whose
// post-commit stats increment was lost, keeping worker totals from drifting.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick; credits stay
// pending until a sweep applies them, so no run is ever load-bearing.
package jobs
