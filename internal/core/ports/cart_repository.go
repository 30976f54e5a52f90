// Package ports defines repository interfaces between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
type CartRepository interface {
	// Add persists a new cart aggregate to storage.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart aggregate.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// Get retrieves a cart aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// GetActiveByCustomer retrieves the customer's single Active cart.
	// Returns errs.ObjectNotFoundError when the customer has none.
	GetActiveByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// MarkAbandonedBefore transitions every Active cart whose last update is
	// older than the cutoff to Abandoned and returns how many were swept.
	// Zero matching carts is a normal outcome.
	MarkAbandonedBefore(ctx context.Context, cutoff time.Time, now time.Time) (int64, error)
}
