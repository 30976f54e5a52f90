package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"

	"github.com/robfig/cron/v3"
)

// EarningsResetJob zeroes courier earnings buckets at period boundaries.
// The daily bucket resets every midnight, the weekly bucket on Monday
// midnight, and the monthly bucket on the first of the month.
type EarningsResetJob struct {
	handler commands.ResetCourierEarningsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEarningsResetJob creates a new job for rolling over courier earnings.
func NewEarningsResetJob(handler commands.ResetCourierEarningsCommandHandler, logger *slog.Logger) *EarningsResetJob {
	return &EarningsResetJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "earnings_reset_job"),
	}
}

// Start registers the three period rollovers and begins the schedule.
func (j *EarningsResetJob) Start() error {
	schedules := []struct {
		spec   string
		period courier.EarningsPeriod
	}{
		{"0 0 * * *", courier.Daily},
		{"0 0 * * 1", courier.Weekly},
		{"0 0 1 * *", courier.Monthly},
	}

	for _, s := range schedules {
		period := s.period
		_, err := j.cron.AddFunc(s.spec, func() {
			j.reset(context.Background(), period)
		})
		if err != nil {
			return err
		}
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Earnings reset job started (daily, weekly, monthly rollovers)")
	return nil
}

// Stop stops the earnings reset job.
func (j *EarningsResetJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Earnings reset job stopped")
}

func (j *EarningsResetJob) reset(ctx context.Context, period courier.EarningsPeriod) {
	cmd, err := commands.NewResetCourierEarningsCommand(period)
	if err != nil {
		j.logger.ErrorContext(ctx, "Earnings reset command construction failed", "error", err)
		return
	}

	changed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Earnings reset job failed", "period", period.String(), "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Reset courier earnings", "period", period.String(), "couriers", changed)
}
