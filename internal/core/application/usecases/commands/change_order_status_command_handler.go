package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// maxStatusChangeAttempts bounds optimistic-lock retries on concurrent
// status changes.
const maxStatusChangeAttempts = 3

// ChangeOrderStatusCommandHandler advances an order through its lifecycle
// or cancels it. The order row is versioned; a lost optimistic-lock race is
// retried on a fresh read up to maxStatusChangeAttempts times.
//
// Terminal transitions settle the assigned courier in the same transaction:
// delivery credits the courier with the order's delivery fee, cancellation
// records an incomplete delivery, and both free the courier for new work.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderCourierUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for order status changes.
func NewChangeOrderStatusCommandHandler(uowFactory OrderCourierUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status-change command, retrying only when the write
// loses an optimistic-lock race.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < maxStatusChangeAttempts; attempt++ {
		err := h.apply(ctx, command)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrConcurrentModification) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

func (h ChangeOrderStatusCommandHandler) apply(ctx context.Context, command ChangeOrderStatusCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := time.Now().UTC()

	target, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if command.Target() == order.Cancelled {
		err = target.Cancel(command.Note(), now)
	} else {
		err = target.Transition(command.Target(), command.Note(), now)
	}
	if err != nil {
		return err
	}

	if target.CourierID() != nil {
		switch target.Status() {
		case order.Delivered:
			if err = h.settleCourier(ctx, uow, target, true, target.Pricing().DeliveryFee, now); err != nil {
				return err
			}
		case order.Cancelled:
			if err = h.settleCourier(ctx, uow, target, false, 0, now); err != nil {
				return err
			}
		}
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h ChangeOrderStatusCommandHandler) settleCourier(
	ctx context.Context,
	uow OrderCourierUoW,
	target *order.Order,
	completed bool,
	payout float64,
	now time.Time,
) error {
	courierRepo := uow.CourierRepository()

	assigned, err := courierRepo.Get(ctx, *target.CourierID())
	if err != nil {
		return err
	}

	if err = assigned.AddDelivery(target.ID(), completed, payout, now); err != nil {
		return err
	}
	assigned.SetAvailable(true)

	return courierRepo.Update(ctx, assigned)
}
