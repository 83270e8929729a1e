// Package jobs provides scheduled background tasks for the shipping system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipment service.
//
// # Available Jobs
//
// 1. AllocationAuditJob - Runs every minute to detect allocations that violate
// quantity-conservation invariants and report them through the logger
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(allocationViolationsHandler, logger)
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
// The audit job uses the cron expression "* * * * *" which means it runs every
// minute. Violations are expected to be rare, so a minute of detection latency
// is acceptable.
//
// # Error Handling
//
// - Query failures are logged as errors and retried on the next tick
// - Each detected violation is logged individually as a warning
// - Failed job starts will stop any already running jobs
package jobs
