package cart

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/core/domain/model/pricing"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart was not created via
	// NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

	// ErrRestaurantMismatch is returned when an item from a different
	// restaurant is added to a cart that already holds items. A cart spans
	// exactly one restaurant.
	ErrRestaurantMismatch = errors.New("cart holds items from a different restaurant")

	// ErrCartIsEmpty is returned when checkout is attempted on a cart with
	// no items.
	ErrCartIsEmpty = errors.New("cart has no items")
)

// Cart is the aggregate holding a customer's pending selection for a single
// restaurant. Adding an item whose menu item and customization set match an
// existing line (compared order-independently) merges the two by summing
// quantities instead of creating a duplicate line.
type Cart struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	items        []*LineItem
	status       Status
	subtotal     float64
	createdAt    time.Time
	lastUpdated  time.Time

	guard guard.ConstructorGuard
}

// NewCart creates an empty active cart for a customer at a restaurant.
func NewCart(customerID, restaurantID kernel.UUID, now time.Time) (*Cart, error) {
	if err := errors.Join(
		customerID.Validate(),
		restaurantID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Cart{
		id:           kernel.NewUUID(),
		customerID:   customerID,
		restaurantID: restaurantID,
		status:       Active,
		createdAt:    now,
		lastUpdated:  now,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreCart reconstructs a cart from persistence.
func RestoreCart(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []*LineItem,
	status Status,
	subtotal float64,
	createdAt time.Time,
	lastUpdated time.Time,
) (*Cart, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		restaurantID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Cart{
		id:           id,
		customerID:   customerID,
		restaurantID: restaurantID,
		items:        items,
		status:       status,
		subtotal:     subtotal,
		createdAt:    createdAt,
		lastUpdated:  lastUpdated,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the cart was created via a constructor.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// ID returns the cart's identity.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// CustomerID returns the owning customer.
func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the restaurant all items belong to.
func (c *Cart) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns the cart's line items.
func (c *Cart) Items() []*LineItem {
	return c.items
}

// Status returns the cart's lifecycle status.
func (c *Cart) Status() Status {
	return c.status
}

// Subtotal returns the sum of all line item totals.
func (c *Cart) Subtotal() float64 {
	return c.subtotal
}

// CreatedAt returns when the cart was created.
func (c *Cart) CreatedAt() time.Time {
	return c.createdAt
}

// LastUpdated returns when the cart contents last changed.
func (c *Cart) LastUpdated() time.Time {
	return c.lastUpdated
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem adds a menu item configuration to the cart. If an equivalent line
// already exists (same menu item, same customization set in any ordering),
// the quantities are summed on the existing line. Items from a restaurant
// other than the cart's are rejected with ErrRestaurantMismatch.
func (c *Cart) AddItem(
	restaurantID kernel.UUID,
	menuItemID kernel.UUID,
	name string,
	unitPrice float64,
	quantity int,
	customizations []menu.Customization,
	specialInstructions string,
	now time.Time,
) (*LineItem, error) {
	if err := c.ensureMutable(); err != nil {
		return nil, err
	}
	if !c.restaurantID.IsEqual(restaurantID) {
		return nil, ErrRestaurantMismatch
	}

	candidate, err := NewLineItem(menuItemID, name, unitPrice, quantity, customizations, specialInstructions)
	if err != nil {
		return nil, err
	}

	if existing := c.findEquivalent(candidate); existing != nil {
		if err := existing.changeQuantity(existing.quantity + quantity); err != nil {
			return nil, err
		}
		c.refresh(now)
		return existing, nil
	}

	c.items = append(c.items, candidate)
	c.refresh(now)
	return candidate, nil
}

// UpdateItemQuantity changes a line item's quantity. A quantity of zero or
// less removes the line entirely.
func (c *Cart) UpdateItemQuantity(itemID kernel.UUID, quantity int, now time.Time) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}

	if quantity <= 0 {
		return c.RemoveItem(itemID, now)
	}

	item := c.findByID(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("cart item", itemID)
	}

	if err := item.changeQuantity(quantity); err != nil {
		return err
	}
	c.refresh(now)
	return nil
}

// RemoveItem deletes a line item from the cart.
func (c *Cart) RemoveItem(itemID kernel.UUID, now time.Time) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}

	for i, item := range c.items {
		if item.id.IsEqual(itemID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.refresh(now)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("cart item", itemID)
}

// Clear removes all items from the cart.
func (c *Cart) Clear(now time.Time) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	c.items = nil
	c.refresh(now)
	return nil
}

// SwitchRestaurant empties the cart and rebinds it to another restaurant.
func (c *Cart) SwitchRestaurant(restaurantID kernel.UUID, now time.Time) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	c.items = nil
	c.refresh(now)
	return nil
}

// BeginCheckout moves a non-empty active cart into checkout.
func (c *Cart) BeginCheckout(now time.Time) error {
	if c.IsEmpty() {
		return ErrCartIsEmpty
	}

	status, err := c.status.BeginCheckout()
	if err != nil {
		return err
	}
	c.status = status
	c.lastUpdated = now
	return nil
}

// Complete marks the cart as converted into an order.
func (c *Cart) Complete(now time.Time) error {
	status, err := c.status.Complete()
	if err != nil {
		return err
	}
	c.status = status
	c.lastUpdated = now
	return nil
}

// MarkAbandoned retires an active cart that has not been touched for the
// given duration. Carts updated more recently are left untouched and the
// method reports false.
func (c *Cart) MarkAbandoned(olderThan time.Duration, now time.Time) (bool, error) {
	if now.Sub(c.lastUpdated) < olderThan {
		return false, nil
	}

	status, err := c.status.Abandon()
	if err != nil {
		return false, err
	}
	c.status = status
	c.lastUpdated = now
	return true, nil
}

func (c *Cart) ensureMutable() error {
	if c.status != Active {
		return errs.NewValueIsInvalidErrorWithCause("cart status",
			errors.New("cart is not active"))
	}
	return nil
}

func (c *Cart) findEquivalent(candidate *LineItem) *LineItem {
	key := candidate.CanonicalKey()
	for _, item := range c.items {
		if item.CanonicalKey() == key {
			return item
		}
	}
	return nil
}

func (c *Cart) findByID(itemID kernel.UUID) *LineItem {
	for _, item := range c.items {
		if item.id.IsEqual(itemID) {
			return item
		}
	}
	return nil
}

// refresh recomputes the subtotal from the line items and bumps lastUpdated.
func (c *Cart) refresh(now time.Time) {
	totals := make([]float64, 0, len(c.items))
	for _, item := range c.items {
		totals = append(totals, item.lineTotal)
	}
	c.subtotal = pricing.Subtotal(totals)
	c.lastUpdated = now
}
