package queries

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler reads in-flight orders from the orders
// table, skipping terminal statuses.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for in-flight order queries.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered oldest first so the
// longest-waiting orders surface at the top.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			estimated_delivery_time,
			delivery_longitude,
			delivery_latitude
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, order.Delivered, order.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			orderNumber string
			status      int
			estimated   time.Time
			longitude   float64
			latitude    float64
		)

		if err = rows.Scan(&id, &orderNumber, &status, &estimated, &longitude, &latitude); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		address, locErr := kernel.NewGeoPoint(longitude, latitude)
		if locErr != nil {
			return nil, locErr
		}

		orders = append(orders, GetUncompletedOrdersQueryResponse{
			ID:                    orderID,
			OrderNumber:           orderNumber,
			Status:                order.Status(status).String(),
			EstimatedDeliveryTime: estimated,
			DeliveryAddress:       address,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
