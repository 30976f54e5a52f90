package commands

import (
	"context"
	"time"
)

// SweepAbandonedCartsCommandHandler marks idle active carts as abandoned.
// Executed periodically by the cart sweep job.
type SweepAbandonedCartsCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewSweepAbandonedCartsCommandHandler creates a handler for cart sweeping.
func NewSweepAbandonedCartsCommandHandler(uowFactory CartUoWFactory) SweepAbandonedCartsCommandHandler {
	return SweepAbandonedCartsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle sweeps every active cart whose last update is older than the
// command's cutoff and returns how many were abandoned. Zero is a normal
// outcome.
func (h SweepAbandonedCartsCommandHandler) Handle(ctx context.Context, command SweepAbandonedCartsCommand) (int64, error) {
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

	now := time.Now().UTC()
	swept, err := uow.CartRepository().MarkAbandonedBefore(ctx, now.Add(-command.OlderThan()), now)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return swept, nil
}
