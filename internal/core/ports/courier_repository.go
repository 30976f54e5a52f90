package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAvailableNear retrieves couriers that are available, online, active
	// and verified within a coarse bounding box around the pickup point.
	// The box is a SQL prefilter only; exact great-circle filtering and
	// ranking happen in the domain matcher.
	GetAvailableNear(ctx context.Context, pickup kernel.GeoPoint, maxDistanceMeters float64) ([]*courier.Courier, error)

	// ResetEarnings clears the given earnings bucket for every courier and
	// returns how many rows changed. The reset is idempotent.
	ResetEarnings(ctx context.Context, period courier.EarningsPeriod) (int64, error)
}
