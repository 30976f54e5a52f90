package jobs

import (
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	courierAssignmentJob *CourierAssignmentJob
	cartSweepJob         *CartSweepJob
	earningsResetJob     *EarningsResetJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	assignCourierHandler commands.AssignCourierCommandHandler,
	sweepCartsHandler commands.SweepAbandonedCartsCommandHandler,
	resetEarningsHandler commands.ResetCourierEarningsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		courierAssignmentJob: NewCourierAssignmentJob(assignCourierHandler, logger),
		cartSweepJob:         NewCartSweepJob(sweepCartsHandler, logger),
		earningsResetJob:     NewEarningsResetJob(resetEarningsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.courierAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start courier assignment job: %w", err)
	}

	if err := jm.cartSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.courierAssignmentJob.Stop()
		return fmt.Errorf("failed to start cart sweep job: %w", err)
	}

	if err := jm.earningsResetJob.Start(); err != nil {
		jm.cartSweepJob.Stop()
		jm.courierAssignmentJob.Stop()
		return fmt.Errorf("failed to start earnings reset job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.earningsResetJob.Stop()
	jm.cartSweepJob.Stop()
	jm.courierAssignmentJob.Stop()
}
