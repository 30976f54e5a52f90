package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// conditioned on the aggregate's version matching the stored one; a
	// mismatch fails with errs.ConcurrentModificationError and leaves the
	// stored row untouched.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its customer-facing order number.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetFirstReadyUnassigned retrieves the oldest Ready order that has no
	// courier yet. Returns errs.ObjectNotFoundError when there is none.
	GetFirstReadyUnassigned(ctx context.Context) (*order.Order, error)

	// Count returns how many orders have ever been placed. Used to derive
	// the sequence part of new order numbers.
	Count(ctx context.Context) (int64, error)
}
