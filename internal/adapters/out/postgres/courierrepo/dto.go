// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. Ratings and delivery history are append-only
// jsonb collections; the stats columns are denormalized for query speed and
// recomputed from the collections on load.
package courierrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name                string        `gorm:"type:varchar(255);not null"`
	Longitude           float64       `gorm:"type:double precision;not null"`
	Latitude            float64       `gorm:"type:double precision;not null"`
	LocationUpdated     time.Time     `gorm:"not null"`
	IsAvailable         bool          `gorm:"not null;index"`
	IsOnline            bool          `gorm:"not null"`
	IsActive            bool          `gorm:"not null"`
	IsVerified          bool          `gorm:"not null"`
	AverageRating       float64       `gorm:"type:numeric(3,1);not null"`
	TotalRatings        int           `gorm:"not null"`
	TotalDeliveries     int           `gorm:"not null"`
	CompletedDeliveries int           `gorm:"not null"`
	CancelledDeliveries int           `gorm:"not null"`
	Ratings             []RatingDTO   `gorm:"type:jsonb;serializer:json"`
	DeliveryHistory     []DeliveryDTO `gorm:"type:jsonb;serializer:json"`
	Earnings            EarningsDTO   `gorm:"type:jsonb;serializer:json"`
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

// RatingDTO is the jsonb representation of one delivery rating.
type RatingDTO struct {
	OrderID string    `json:"order_id"`
	Value   float64   `json:"value"`
	Comment string    `json:"comment,omitempty"`
	RatedAt time.Time `json:"rated_at"`
}

// DeliveryDTO is the jsonb representation of one delivery record.
type DeliveryDTO struct {
	OrderID    string    `json:"order_id"`
	Completed  bool      `json:"completed"`
	Earnings   float64   `json:"earnings"`
	RecordedAt time.Time `json:"recorded_at"`
}

// EarningsDTO is the jsonb representation of the earnings buckets.
type EarningsDTO struct {
	Total     float64 `json:"total"`
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"this_week"`
	ThisMonth float64 `json:"this_month"`
	Pending   float64 `json:"pending"`
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	ratings := make([]RatingDTO, 0, len(aggregate.Ratings()))
	for _, r := range aggregate.Ratings() {
		ratings = append(ratings, RatingDTO{
			OrderID: r.OrderID.String(),
			Value:   r.Value,
			Comment: r.Comment,
			RatedAt: r.RatedAt,
		})
	}

	history := make([]DeliveryDTO, 0, len(aggregate.DeliveryHistory()))
	for _, d := range aggregate.DeliveryHistory() {
		history = append(history, DeliveryDTO{
			OrderID:    d.OrderID.String(),
			Completed:  d.Completed,
			Earnings:   d.Earnings,
			RecordedAt: d.RecordedAt,
		})
	}

	earnings := aggregate.Earnings()
	stats := aggregate.Stats()
	return CourierDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Name(),
		Longitude:           aggregate.Location().Longitude(),
		Latitude:            aggregate.Location().Latitude(),
		LocationUpdated:     aggregate.LocationUpdated(),
		IsAvailable:         aggregate.IsAvailable(),
		IsOnline:            aggregate.IsOnline(),
		IsActive:            aggregate.IsActive(),
		IsVerified:          aggregate.IsVerified(),
		AverageRating:       stats.AverageRating,
		TotalRatings:        stats.TotalRatings,
		TotalDeliveries:     stats.TotalDeliveries,
		CompletedDeliveries: stats.CompletedDeliveries,
		CancelledDeliveries: stats.CancelledDeliveries,
		Ratings:             ratings,
		DeliveryHistory:     history,
		Earnings: EarningsDTO{
			Total:     earnings.Total,
			Today:     earnings.Today,
			ThisWeek:  earnings.ThisWeek,
			ThisMonth: earnings.ThisMonth,
			Pending:   earnings.Pending,
		},
	}
}

// toDomain converts a database DTO to a courier aggregate using
// RestoreCourier, which recomputes the stats from the collections.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Longitude, dto.Latitude)
	if err != nil {
		return nil, err
	}

	ratings := make([]courier.Rating, 0, len(dto.Ratings))
	for _, r := range dto.Ratings {
		orderID, idErr := kernel.UUIDFromString(r.OrderID)
		if idErr != nil {
			return nil, idErr
		}
		ratings = append(ratings, courier.Rating{
			OrderID: orderID,
			Value:   r.Value,
			Comment: r.Comment,
			RatedAt: r.RatedAt,
		})
	}

	history := make([]courier.Delivery, 0, len(dto.DeliveryHistory))
	for _, d := range dto.DeliveryHistory {
		orderID, idErr := kernel.UUIDFromString(d.OrderID)
		if idErr != nil {
			return nil, idErr
		}
		history = append(history, courier.Delivery{
			OrderID:    orderID,
			Completed:  d.Completed,
			Earnings:   d.Earnings,
			RecordedAt: d.RecordedAt,
		})
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		location,
		dto.LocationUpdated,
		dto.IsAvailable,
		dto.IsOnline,
		dto.IsActive,
		dto.IsVerified,
		ratings,
		history,
		courier.Earnings{
			Total:     dto.Earnings.Total,
			Today:     dto.Earnings.Today,
			ThisWeek:  dto.Earnings.ThisWeek,
			ThisMonth: dto.Earnings.ThisMonth,
			Pending:   dto.Earnings.Pending,
		},
	)
}
