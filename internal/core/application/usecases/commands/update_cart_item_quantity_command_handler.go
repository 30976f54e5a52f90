package commands

import (
	"context"
	"time"
)

// UpdateCartItemQuantityCommandHandler changes line item quantities in the
// customer's active cart, removing items when the quantity drops to zero.
type UpdateCartItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewUpdateCartItemQuantityCommandHandler creates a handler for quantity changes.
func NewUpdateCartItemQuantityCommandHandler(uowFactory CartUoWFactory) UpdateCartItemQuantityCommandHandler {
	return UpdateCartItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the customer's active cart, applies the quantity change and
// persists the cart within a single transaction.
func (h UpdateCartItemQuantityCommandHandler) Handle(ctx context.Context, command UpdateCartItemQuantityCommand) error {
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

	if err = customerCart.UpdateItemQuantity(command.ItemID(), command.Quantity(), time.Now().UTC()); err != nil {
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
