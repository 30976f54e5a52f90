package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// abandonAfter is how long an active cart may sit untouched before the
// sweep marks it abandoned.
const abandonAfter = 7 * 24 * time.Hour

// CartSweepJob manages the scheduled sweep of idle carts.
// Runs hourly to mark long-untouched active carts as abandoned.
type CartSweepJob struct {
	handler commands.SweepAbandonedCartsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCartSweepJob creates a new job for sweeping abandoned carts.
func NewCartSweepJob(handler commands.SweepAbandonedCartsCommandHandler, logger *slog.Logger) *CartSweepJob {
	return &CartSweepJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "cart_sweep_job"),
	}
}

// Start begins the cart sweep job to run at the top of every hour.
func (j *CartSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepAbandonedCartsCommand(abandonAfter)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart sweep command construction failed", "error", err)
			return
		}

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart sweep job failed", "error", err)
			return
		}

		if swept > 0 {
			j.logger.InfoContext(ctx, "Swept abandoned carts", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart sweep job started (running hourly)")
	return nil
}

// Stop stops the cart sweep job.
func (j *CartSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cart sweep job stopped")
}
