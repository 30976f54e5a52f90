// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. CourierAssignmentJob - Runs every second to assign ready orders to available couriers
// 2. CartSweepJob - Runs hourly to mark idle active carts as abandoned
// 3. EarningsResetJob - Zeroes courier earnings buckets at day, week, and month boundaries
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(assignCourierHandler, sweepCartsHandler, resetEarningsHandler, logger)
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
// The assignment job uses the cron expression "* * * * * *" so that ready
// orders are picked up within a second of appearing. The sweep and reset
// jobs use standard five-field expressions since they run hourly or less.
//
// # Error Handling
//
// - Assignment job ignores expected business errors (no orders, no couriers)
// - Sweep and reset jobs log all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
