package commands

import (
	"context"
	"time"
)

// ClearCartCommandHandler empties the customer's active cart.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewClearCartCommandHandler creates a handler for cart clearing.
func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the customer's active cart, removes every item and persists
// the empty cart within a single transaction.
func (h ClearCartCommandHandler) Handle(ctx context.Context, command ClearCartCommand) error {
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

	cartRepo := uow.CartRepository()

	customerCart, err := cartRepo.GetActiveByCustomer(ctx, command.CustomerID())
	if err != nil {
		return err
	}

	if err = customerCart.Clear(time.Now().UTC()); err != nil {
		return err
	}

	if err = cartRepo.Update(ctx, customerCart); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
