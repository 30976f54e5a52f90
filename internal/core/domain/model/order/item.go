package order

import (
	"errors"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/pkg/errs"
)

// Item is an immutable snapshot of a cart line item taken at checkout.
// Prices and quantities are copied, not referenced, so later menu or cart
// changes never affect a placed order.
type Item struct {
	MenuItemID          kernel.UUID
	Name                string
	UnitPrice           float64
	Quantity            int
	Customizations      []menu.Customization
	SpecialInstructions string
	LineTotal           float64
}

// Validate checks the snapshot carries a valid menu item reference, a name,
// non-negative money and a positive quantity.
func (i Item) Validate() error {
	if err := i.MenuItemID.Validate(); err != nil {
		return err
	}
	if i.Name == "" {
		return errs.NewValueIsRequiredError("order item name")
	}
	if i.UnitPrice < 0 || i.LineTotal < 0 {
		return errs.NewValueIsInvalidError("order item price")
	}
	if i.Quantity < 1 {
		return errs.NewValueIsInvalidError("order item quantity")
	}
	return menu.ValidateCustomizations(i.Customizations)
}

// ItemsFromCart snapshots every line item of a cart into order items.
func ItemsFromCart(lineItems []*cart.LineItem) ([]Item, error) {
	if len(lineItems) == 0 {
		return nil, errors.New("cart has no items to snapshot")
	}

	items := make([]Item, 0, len(lineItems))
	for _, li := range lineItems {
		if err := li.Validate(); err != nil {
			return nil, err
		}
		items = append(items, Item{
			MenuItemID:          li.MenuItemID(),
			Name:                li.Name(),
			UnitPrice:           li.UnitPrice(),
			Quantity:            li.Quantity(),
			Customizations:      li.Customizations(),
			SpecialInstructions: li.SpecialInstructions(),
			LineTotal:           li.LineTotal(),
		})
	}
	return items, nil
}
