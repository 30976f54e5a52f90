package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTopRatedCouriersQueryHandler reads the courier leaderboard from the
// couriers table using the denormalized stats columns.
type GetTopRatedCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetTopRatedCouriersQueryHandler creates a handler for leaderboard queries.
func NewGetTopRatedCouriersQueryHandler(db *gorm.DB) GetTopRatedCouriersQueryHandler {
	return GetTopRatedCouriersQueryHandler{db: db}
}

// Handle executes the query. Couriers with no ratings sort last.
func (h GetTopRatedCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetTopRatedCouriersQuery,
) ([]GetTopRatedCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetTopRatedCouriersQueryResponse, 0, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			average_rating,
			total_deliveries
		FROM couriers
		WHERE is_active
		ORDER BY average_rating DESC, total_deliveries DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id              uuid.UUID
			name            string
			averageRating   float64
			totalDeliveries int
		)

		if err = rows.Scan(&id, &name, &averageRating, &totalDeliveries); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		couriers = append(couriers, GetTopRatedCouriersQueryResponse{
			ID:              courierID,
			Name:            name,
			AverageRating:   averageRating,
			TotalDeliveries: totalDeliveries,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
