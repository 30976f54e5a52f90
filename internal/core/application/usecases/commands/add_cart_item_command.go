package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrItemNameIsRequired = errors.New("item name is required")
)

// AddCartItemCommand represents a request to put a menu item configuration
// into the customer's active cart. When the customer has an active cart for
// another restaurant, the add fails unless switchRestaurant is set, in which
// case the cart is cleared and rebound first.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID          kernel.UUID
	restaurantID        kernel.UUID
	menuItemID          kernel.UUID
	name                string
	unitPrice           float64
	quantity            int
	customizations      []menu.Customization
	specialInstructions string
	switchRestaurant    bool

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a validated add-to-cart command.
func NewAddCartItemCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	menuItemID kernel.UUID,
	name string,
	unitPrice float64,
	quantity int,
	customizations []menu.Customization,
	specialInstructions string,
	switchRestaurant bool,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setMenuItemID(menuItemID),
		cmd.setName(name),
		cmd.setUnitPrice(unitPrice),
		cmd.setQuantity(quantity),
		cmd.setCustomizations(customizations),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	cmd.specialInstructions = specialInstructions
	cmd.switchRestaurant = switchRestaurant
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the cart owner.
func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the restaurant the item belongs to.
func (c AddCartItemCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// MenuItemID returns the menu item being added.
func (c AddCartItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

// Name returns the menu item name.
func (c AddCartItemCommand) Name() string {
	return c.name
}

// UnitPrice returns the base price of a single unit.
func (c AddCartItemCommand) UnitPrice() float64 {
	return c.unitPrice
}

// Quantity returns how many units to add.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

// Customizations returns the selected customization groups.
func (c AddCartItemCommand) Customizations() []menu.Customization {
	return c.customizations
}

// SpecialInstructions returns the customer's free-text note.
func (c AddCartItemCommand) SpecialInstructions() string {
	return c.specialInstructions
}

// SwitchRestaurant reports whether a cart bound to another restaurant should
// be cleared and rebound instead of failing.
func (c AddCartItemCommand) SwitchRestaurant() bool {
	return c.switchRestaurant
}

func (c *AddCartItemCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *AddCartItemCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *AddCartItemCommand) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	c.menuItemID = menuItemID
	return nil
}

func (c *AddCartItemCommand) setName(name string) error {
	if name == "" {
		return ErrItemNameIsRequired
	}
	c.name = name
	return nil
}

func (c *AddCartItemCommand) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%.2f is negative", unitPrice))
	}
	c.unitPrice = unitPrice
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	c.quantity = quantity
	return nil
}

func (c *AddCartItemCommand) setCustomizations(customizations []menu.Customization) error {
	if err := menu.ValidateCustomizations(customizations); err != nil {
		return err
	}
	c.customizations = customizations
	return nil
}
