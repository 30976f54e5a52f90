package commands

import (
	"context"
	"time"
)

// RemoveCartItemCommandHandler removes line items from the customer's active cart.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveCartItemCommandHandler creates a handler for item removal.
func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the customer's active cart, removes the item and persists the
// cart within a single transaction.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, command RemoveCartItemCommand) error {
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

	if err = customerCart.RemoveItem(command.ItemID(), time.Now().UTC()); err != nil {
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
