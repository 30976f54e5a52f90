// Package restaurantrepo provides data transfer objects and mapping
// functions for restaurant persistence. Reviews live in a jsonb column; the
// average rating column is denormalized for leaderboard queries and
// recomputed from the reviews on load.
package restaurantrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for persisting restaurant aggregates.
type RestaurantDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name          string      `gorm:"type:varchar(255);not null"`
	Longitude     float64     `gorm:"type:double precision;not null"`
	Latitude      float64     `gorm:"type:double precision;not null"`
	DeliveryFee   float64     `gorm:"type:numeric(12,2);not null"`
	TaxRate       float64     `gorm:"type:numeric(5,4);not null"`
	IsOpen        bool        `gorm:"not null"`
	AverageRating float64     `gorm:"type:numeric(3,1);not null"`
	Reviews       []ReviewDTO `gorm:"type:jsonb;serializer:json"`
}

// TableName overrides GORM's default naming to use "restaurants".
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ReviewDTO is the jsonb representation of one customer review.
type ReviewDTO struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Rating    float64      `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	Images    []string     `json:"images,omitempty"`
	Response  *ResponseDTO `json:"response,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ResponseDTO is the jsonb representation of the restaurant's reply.
type ResponseDTO struct {
	Text        string    `json:"text"`
	RespondedAt time.Time `json:"responded_at"`
}

// fromDomain converts a restaurant aggregate to its database representation.
func fromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	reviews := make([]ReviewDTO, 0, len(aggregate.Reviews()))
	for _, review := range aggregate.Reviews() {
		var response *ResponseDTO
		if review.Response != nil {
			response = &ResponseDTO{
				Text:        review.Response.Text,
				RespondedAt: review.Response.RespondedAt,
			}
		}

		reviews = append(reviews, ReviewDTO{
			ID:        review.ID.String(),
			UserID:    review.UserID.String(),
			Rating:    review.Rating,
			Comment:   review.Comment,
			Images:    review.Images,
			Response:  response,
			CreatedAt: review.CreatedAt,
			UpdatedAt: review.UpdatedAt,
		})
	}

	return RestaurantDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Longitude:     aggregate.Location().Longitude(),
		Latitude:      aggregate.Location().Latitude(),
		DeliveryFee:   aggregate.DeliveryFee(),
		TaxRate:       aggregate.TaxRate(),
		IsOpen:        aggregate.IsOpen(),
		AverageRating: aggregate.AverageRating(),
		Reviews:       reviews,
	}
}

// toDomain converts a database DTO to a restaurant aggregate using
// RestoreRestaurant, which recomputes the rating from the reviews.
func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Longitude, dto.Latitude)
	if err != nil {
		return nil, err
	}

	reviews := make([]restaurant.Review, 0, len(dto.Reviews))
	for _, reviewDTO := range dto.Reviews {
		reviewID, idErr := kernel.UUIDFromString(reviewDTO.ID)
		if idErr != nil {
			return nil, idErr
		}
		userID, idErr := kernel.UUIDFromString(reviewDTO.UserID)
		if idErr != nil {
			return nil, idErr
		}

		var response *restaurant.Response
		if reviewDTO.Response != nil {
			response = &restaurant.Response{
				Text:        reviewDTO.Response.Text,
				RespondedAt: reviewDTO.Response.RespondedAt,
			}
		}

		reviews = append(reviews, restaurant.Review{
			ID:        reviewID,
			UserID:    userID,
			Rating:    reviewDTO.Rating,
			Comment:   reviewDTO.Comment,
			Images:    reviewDTO.Images,
			Response:  response,
			CreatedAt: reviewDTO.CreatedAt,
			UpdatedAt: reviewDTO.UpdatedAt,
		})
	}

	return restaurant.RestoreRestaurant(
		id,
		dto.Name,
		location,
		dto.DeliveryFee,
		dto.TaxRate,
		dto.IsOpen,
		reviews,
	)
}
