// Package customer contains the Customer aggregate, reduced here to what
// checkout needs: identity and the loyalty point balance redeemed for order
// discounts.
package customer

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer was not
	// created via NewCustomer or RestoreCustomer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

	// ErrInsufficientLoyaltyPoints is returned when a deduction exceeds the
	// customer's balance.
	ErrInsufficientLoyaltyPoints = errors.New("insufficient loyalty points")
)

// Customer is the aggregate root for a buyer account.
type Customer struct {
	id            kernel.UUID
	name          string
	loyaltyPoints int

	guard guard.ConstructorGuard
}

// NewCustomer creates a customer with an empty loyalty balance.
func NewCustomer(name string) (*Customer, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("customer name")
	}

	return &Customer{
		id:    kernel.NewUUID(),
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreCustomer reconstructs a customer from persistence.
func RestoreCustomer(id kernel.UUID, name string, loyaltyPoints int) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("customer name")
	}
	if loyaltyPoints < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("loyalty points",
			fmt.Errorf("%d is negative", loyaltyPoints))
	}

	return &Customer{
		id:            id,
		name:          name,
		loyaltyPoints: loyaltyPoints,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the customer was created via a constructor.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's name.
func (c *Customer) Name() string {
	return c.name
}

// LoyaltyPoints returns the current balance.
func (c *Customer) LoyaltyPoints() int {
	return c.loyaltyPoints
}

// AddLoyaltyPoints credits points earned from an order.
func (c *Customer) AddLoyaltyPoints(points int) error {
	if points < 0 {
		return errs.NewValueIsInvalidErrorWithCause("loyalty points",
			fmt.Errorf("%d is negative", points))
	}
	c.loyaltyPoints += points
	return nil
}

// DeductLoyaltyPoints redeems points against an order. Deducting more than
// the balance fails with ErrInsufficientLoyaltyPoints and leaves the balance
// unchanged.
func (c *Customer) DeductLoyaltyPoints(points int) error {
	if points < 0 {
		return errs.NewValueIsInvalidErrorWithCause("loyalty points",
			fmt.Errorf("%d is negative", points))
	}
	if points > c.loyaltyPoints {
		return ErrInsufficientLoyaltyPoints
	}
	c.loyaltyPoints -= points
	return nil
}
