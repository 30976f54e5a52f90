package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateCartItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateCartItemQuantityCommand must be created via NewUpdateCartItemQuantityCommand constructor",
)

// UpdateCartItemQuantityCommand changes the quantity of a line item in the
// customer's active cart. A non-positive quantity removes the item.
type UpdateCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	itemID     kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewUpdateCartItemQuantityCommand creates a validated quantity-change command.
func NewUpdateCartItemQuantityCommand(
	customerID kernel.UUID,
	itemID kernel.UUID,
	quantity int,
) (UpdateCartItemQuantityCommand, error) {
	cmd := UpdateCartItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItemID(itemID),
	); err != nil {
		return UpdateCartItemQuantityCommand{}, err
	}

	cmd.quantity = quantity
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemQuantityCommandIsNotConstructed)
}

// CustomerID returns the cart owner.
func (c UpdateCartItemQuantityCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ItemID returns the line item to change.
func (c UpdateCartItemQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the new quantity. Zero or negative means remove.
func (c UpdateCartItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateCartItemQuantityCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *UpdateCartItemQuantityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}
