package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// dispatchSpec runs a dispatch round every second so ready orders do not
// wait on couriers longer than they have to.
const dispatchSpec = "* * * * * *"

// CourierAssignmentJob runs the dispatch loop, matching the oldest ready
// order with the best courier near its restaurant.
type CourierAssignmentJob struct {
	handler commands.AssignCourierCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierAssignmentJob creates the dispatch job.
func NewCourierAssignmentJob(handler commands.AssignCourierCommandHandler, logger *slog.Logger) *CourierAssignmentJob {
	return &CourierAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "courier_assignment_job"),
	}
}

// Start schedules the dispatch rounds.
func (j *CourierAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(dispatchSpec, func() {
		j.dispatch(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier dispatch started", "schedule", dispatchSpec)
	return nil
}

// Stop halts the dispatch rounds.
func (j *CourierAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier dispatch stopped")
}

// dispatch runs one assignment round. An empty queue or a fleet with nobody
// free is the normal idle state, not an error worth logging every second.
func (j *CourierAssignmentJob) dispatch(ctx context.Context) {
	err := j.handler.Handle(ctx, commands.NewAssignCourierCommand())
	if err == nil || errors.Is(err, commands.ErrNoOrderFound) || errors.Is(err, commands.ErrNoFreeCouriersFound) {
		return
	}

	j.logger.ErrorContext(ctx, "Dispatch round failed", "error", err)
}
