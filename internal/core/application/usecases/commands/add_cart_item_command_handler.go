package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/pkg/errs"
)

// AddCartItemCommandHandler puts menu items into the customer's active cart.
// Creates the cart on first use, merges equivalent configurations, and
// enforces the single-restaurant rule. When the command asks for a restaurant
// switch, the existing cart is cleared and rebound before the add.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddCartItemCommandHandler creates a handler for add-to-cart operations.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-to-cart command. Loads or creates the customer's
// active cart, resolves restaurant binding, adds the item, and persists the
// result within a single transaction. Returns cart.ErrRestaurantMismatch when
// the cart belongs to another restaurant and no switch was requested.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, command AddCartItemCommand) error {
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
	now := time.Now().UTC()

	customerCart, err := cartRepo.GetActiveByCustomer(ctx, command.CustomerID())
	isNew := false
	if errors.Is(err, errs.ErrObjectNotFound) {
		customerCart, err = cart.NewCart(command.CustomerID(), command.RestaurantID(), now)
		if err != nil {
			return err
		}
		isNew = true
	} else if err != nil {
		return err
	}

	if !customerCart.RestaurantID().IsEqual(command.RestaurantID()) {
		if !command.SwitchRestaurant() {
			return cart.ErrRestaurantMismatch
		}
		if err = customerCart.SwitchRestaurant(command.RestaurantID(), now); err != nil {
			return err
		}
	}

	if _, err = customerCart.AddItem(
		command.RestaurantID(),
		command.MenuItemID(),
		command.Name(),
		command.UnitPrice(),
		command.Quantity(),
		command.Customizations(),
		command.SpecialInstructions(),
		now,
	); err != nil {
		return err
	}

	if isNew {
		err = cartRepo.Add(ctx, customerCart)
	} else {
		err = cartRepo.Update(ctx, customerCart)
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
