package commands

import (
	"context"
	"time"
)

// UpdateCourierLocationCommandHandler persists courier position reports.
// Couriers send these continuously while on shift, so the handler stays a
// thin load-mutate-save pass.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierLocationCommandHandler creates a handler for courier
// location updates.
func NewUpdateCourierLocationCommandHandler(uowFactory CourierUoWFactory) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the courier, moves it to the reported position and persists
// the change within a single transaction.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, command UpdateCourierLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	reporting, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if err = reporting.UpdateLocation(command.Location(), time.Now().UTC()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, reporting); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
