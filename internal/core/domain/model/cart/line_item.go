package cart

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/core/domain/model/pricing"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// maxSpecialInstructionsLen bounds the free-text note a customer may attach
// to a line item.
const maxSpecialInstructionsLen = 200

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via
// NewLineItem or RestoreLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one distinct product configuration inside a cart: a menu item
// plus a customization set, with a quantity and a computed total. Two line
// items with the same menu item and an equivalent customization set (compared
// order-independently) are merged rather than kept side by side.
type LineItem struct {
	id                  kernel.UUID
	menuItemID          kernel.UUID
	name                string
	unitPrice           float64
	quantity            int
	customizations      []menu.Customization
	specialInstructions string
	lineTotal           float64

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item and computes its total:
// (unitPrice + sum of selected option prices) * quantity.
func NewLineItem(
	menuItemID kernel.UUID,
	name string,
	unitPrice float64,
	quantity int,
	customizations []menu.Customization,
	specialInstructions string,
) (*LineItem, error) {
	item := &LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setCustomizations(customizations),
		item.setSpecialInstructions(specialInstructions),
	); err != nil {
		return nil, err
	}

	item.id = kernel.NewUUID()
	if err := item.setQuantity(quantity); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreLineItem reconstructs a line item from persistence, preserving its
// identity and stored total.
func RestoreLineItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	name string,
	unitPrice float64,
	quantity int,
	customizations []menu.Customization,
	specialInstructions string,
	lineTotal float64,
) (*LineItem, error) {
	item := &LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setCustomizations(customizations),
		item.setSpecialInstructions(specialInstructions),
	); err != nil {
		return nil, err
	}

	item.id = id
	if err := item.setQuantity(quantity); err != nil {
		return nil, err
	}
	item.lineTotal = lineTotal

	return item, nil
}

// Validate ensures the line item was created via a constructor.
func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ID returns the line item's identity within its cart.
func (li *LineItem) ID() kernel.UUID {
	return li.id
}

// MenuItemID returns the referenced menu item.
func (li *LineItem) MenuItemID() kernel.UUID {
	return li.menuItemID
}

// Name returns the menu item name captured at add time.
func (li *LineItem) Name() string {
	return li.name
}

// UnitPrice returns the base price of a single unit before customizations.
func (li *LineItem) UnitPrice() float64 {
	return li.unitPrice
}

// Quantity returns how many units of this configuration are in the cart.
func (li *LineItem) Quantity() int {
	return li.quantity
}

// Customizations returns a copy of the customization set.
func (li *LineItem) Customizations() []menu.Customization {
	return menu.CloneCustomizations(li.customizations)
}

// SpecialInstructions returns the customer's free-text note.
func (li *LineItem) SpecialInstructions() string {
	return li.specialInstructions
}

// LineTotal returns (unitPrice + customization total) * quantity.
func (li *LineItem) LineTotal() float64 {
	return li.lineTotal
}

// CanonicalKey returns the order-independent configuration identity used for
// merging equivalent line items.
func (li *LineItem) CanonicalKey() string {
	return menu.CanonicalKey(li.menuItemID, li.customizations)
}

// IsEquivalent reports whether the other line item references the same menu
// item with an equivalent customization set, regardless of option ordering.
func (li *LineItem) IsEquivalent(other *LineItem) bool {
	return other != nil && li.CanonicalKey() == other.CanonicalKey()
}

// changeQuantity replaces the quantity and recomputes the total.
func (li *LineItem) changeQuantity(quantity int) error {
	if err := li.setQuantity(quantity); err != nil {
		return err
	}
	return nil
}

func (li *LineItem) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	li.menuItemID = menuItemID
	return nil
}

func (li *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("line item name")
	}
	li.name = name
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%.2f is negative", unitPrice))
	}
	li.unitPrice = unitPrice
	return nil
}

func (li *LineItem) setCustomizations(customizations []menu.Customization) error {
	if err := menu.ValidateCustomizations(customizations); err != nil {
		return err
	}
	li.customizations = menu.CloneCustomizations(customizations)
	return nil
}

func (li *LineItem) setSpecialInstructions(instructions string) error {
	if len(instructions) > maxSpecialInstructionsLen {
		return errs.NewValueIsOutOfRangeError("special instructions length",
			len(instructions), 0, maxSpecialInstructionsLen)
	}
	li.specialInstructions = instructions
	return nil
}

// setQuantity validates the quantity and recomputes lineTotal via the
// pricing rules so the invariant lineTotal == (unitPrice + options) * quantity
// holds after every change.
func (li *LineItem) setQuantity(quantity int) error {
	total, err := pricing.LineTotal(li.unitPrice, pricing.CustomizationTotal(li.customizations), quantity)
	if err != nil {
		return err
	}

	li.quantity = quantity
	li.lineTotal = total
	return nil
}
