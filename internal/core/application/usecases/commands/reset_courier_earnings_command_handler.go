package commands

import (
	"context"
)

// ResetCourierEarningsCommandHandler zeroes an earnings bucket across the
// courier fleet. Executed by the scheduled period-rollover jobs.
type ResetCourierEarningsCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewResetCourierEarningsCommandHandler creates a handler for earnings resets.
func NewResetCourierEarningsCommandHandler(uowFactory CourierUoWFactory) ResetCourierEarningsCommandHandler {
	return ResetCourierEarningsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle resets the commanded bucket for every courier and returns how many
// rows changed. Repeated runs within the same period are harmless.
func (h ResetCourierEarningsCommandHandler) Handle(ctx context.Context, command ResetCourierEarningsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	changed, err := uow.CourierRepository().ResetEarnings(ctx, command.Period())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return changed, nil
}
