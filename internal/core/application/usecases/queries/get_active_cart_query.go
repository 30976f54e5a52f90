// Package queries contains read-only operations that bypass the domain model
// and read directly from storage. Implements the query side of the CQRS
// architecture with raw SQL over the shared database handle.
package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetActiveCartQueryIsNotConstructed = errors.New(
	"GetActiveCartQuery must be created via NewGetActiveCartQuery constructor",
)

// GetActiveCartQuery retrieves the customer's current active cart contents
// for display. A customer has at most one active cart.
type GetActiveCartQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveCartQuery creates a query for the customer's active cart.
func NewGetActiveCartQuery(customerID kernel.UUID) (GetActiveCartQuery, error) {
	q := GetActiveCartQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setCustomerID(customerID); err != nil {
		return GetActiveCartQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveCartQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveCartQueryIsNotConstructed)
}

// CustomerID returns the cart owner.
func (q GetActiveCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetActiveCartQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	q.customerID = customerID
	return nil
}

// GetActiveCartQueryResponse is the cart view returned to the caller.
type GetActiveCartQueryResponse struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Subtotal     float64
	Items        []CartItemResponse
}

// CartItemResponse is a single line of the cart view.
type CartItemResponse struct {
	ID                  kernel.UUID
	MenuItemID          kernel.UUID
	Name                string
	UnitPrice           float64
	Quantity            int
	SpecialInstructions string
	LineTotal           float64
}
