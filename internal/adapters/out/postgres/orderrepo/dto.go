// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Item snapshots, the status timeline and the customer
// rating live in jsonb columns; the version column backs optimistic locking.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primaryKey"`
	OrderNumber           string             `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID            uuid.UUID          `gorm:"type:uuid;not null;index"`
	RestaurantID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	CourierID             *uuid.UUID         `gorm:"type:uuid;index"`
	Status                int                `gorm:"type:smallint;not null;index"`
	Items                 []ItemDTO          `gorm:"type:jsonb;serializer:json"`
	DeliveryLongitude     float64            `gorm:"type:double precision;not null"`
	DeliveryLatitude      float64            `gorm:"type:double precision;not null"`
	Subtotal              float64            `gorm:"type:numeric(12,2);not null"`
	DeliveryFee           float64            `gorm:"type:numeric(12,2);not null"`
	Tax                   float64            `gorm:"type:numeric(12,2);not null"`
	Discount              float64            `gorm:"type:numeric(12,2);not null"`
	Tip                   float64            `gorm:"type:numeric(12,2);not null"`
	Total                 float64            `gorm:"type:numeric(12,2);not null"`
	PaymentMethod         int                `gorm:"type:smallint;not null"`
	PaymentStatus         int                `gorm:"type:smallint;not null"`
	Timeline              []TimelineEntryDTO `gorm:"type:jsonb;serializer:json"`
	EstimatedDeliveryTime time.Time          `gorm:"not null"`
	ActualDeliveryTime    *time.Time
	CancellationReason    string     `gorm:"type:varchar(500)"`
	Rating                *RatingDTO `gorm:"type:jsonb;serializer:json"`
	LoyaltyPointsUsed     int        `gorm:"not null"`
	LoyaltyPointsEarned   int        `gorm:"not null"`
	Version               int        `gorm:"not null"`
	CreatedAt             time.Time  `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the jsonb representation of one ordered item snapshot.
type ItemDTO struct {
	MenuItemID          string             `json:"menu_item_id"`
	Name                string             `json:"name"`
	UnitPrice           float64            `json:"unit_price"`
	Quantity            int                `json:"quantity"`
	Customizations      []CustomizationDTO `json:"customizations,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	LineTotal           float64            `json:"line_total"`
}

// CustomizationDTO is the jsonb representation of one customization group.
type CustomizationDTO struct {
	GroupName       string      `json:"group_name"`
	SelectedOptions []OptionDTO `json:"selected_options"`
}

// OptionDTO is the jsonb representation of one selected option.
type OptionDTO struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// TimelineEntryDTO is the jsonb representation of one timeline entry.
type TimelineEntryDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// RatingDTO is the jsonb representation of the customer rating.
type RatingDTO struct {
	Value   float64   `json:"value"`
	Comment string    `json:"comment,omitempty"`
	RatedAt time.Time `json:"rated_at"`
}

func customizationsFromDomain(customizations []menu.Customization) []CustomizationDTO {
	if len(customizations) == 0 {
		return nil
	}

	dtos := make([]CustomizationDTO, 0, len(customizations))
	for _, c := range customizations {
		options := make([]OptionDTO, 0, len(c.SelectedOptions))
		for _, o := range c.SelectedOptions {
			options = append(options, OptionDTO{Name: o.Name, Price: o.Price})
		}
		dtos = append(dtos, CustomizationDTO{
			GroupName:       c.GroupName,
			SelectedOptions: options,
		})
	}
	return dtos
}

func customizationsToDomain(dtos []CustomizationDTO) []menu.Customization {
	if len(dtos) == 0 {
		return nil
	}

	customizations := make([]menu.Customization, 0, len(dtos))
	for _, dto := range dtos {
		options := make([]menu.Option, 0, len(dto.SelectedOptions))
		for _, o := range dto.SelectedOptions {
			options = append(options, menu.Option{Name: o.Name, Price: o.Price})
		}
		customizations = append(customizations, menu.Customization{
			GroupName:       dto.GroupName,
			SelectedOptions: options,
		})
	}
	return customizations
}

// fromDomain converts an order aggregate to its database representation.
// The first timeline entry carries the placement time, reused as created_at.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			MenuItemID:          item.MenuItemID.String(),
			Name:                item.Name,
			UnitPrice:           item.UnitPrice,
			Quantity:            item.Quantity,
			Customizations:      customizationsFromDomain(item.Customizations),
			SpecialInstructions: item.SpecialInstructions,
			LineTotal:           item.LineTotal,
		})
	}

	timeline := make([]TimelineEntryDTO, 0, len(aggregate.Timeline()))
	for _, entry := range aggregate.Timeline() {
		timeline = append(timeline, TimelineEntryDTO{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			Note:      entry.Note,
		})
	}

	var rating *RatingDTO
	if r := aggregate.Rating(); r != nil {
		rating = &RatingDTO{
			Value:   r.Value,
			Comment: r.Comment,
			RatedAt: r.RatedAt,
		}
	}

	createdAt := time.Now().UTC()
	if len(aggregate.Timeline()) > 0 {
		createdAt = aggregate.Timeline()[0].Timestamp
	}

	pricing := aggregate.Pricing()
	return OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderNumber:           aggregate.OrderNumber(),
		CustomerID:            aggregate.CustomerID().Bytes(),
		RestaurantID:          aggregate.RestaurantID().Bytes(),
		CourierID:             courierID,
		Status:                int(aggregate.Status()),
		Items:                 items,
		DeliveryLongitude:     aggregate.DeliveryAddress().Longitude(),
		DeliveryLatitude:      aggregate.DeliveryAddress().Latitude(),
		Subtotal:              pricing.Subtotal,
		DeliveryFee:           pricing.DeliveryFee,
		Tax:                   pricing.Tax,
		Discount:              pricing.Discount,
		Tip:                   pricing.Tip,
		Total:                 pricing.Total,
		PaymentMethod:         int(aggregate.Payment().Method),
		PaymentStatus:         int(aggregate.Payment().Status),
		Timeline:              timeline,
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		CancellationReason:    aggregate.CancellationReason(),
		Rating:                rating,
		LoyaltyPointsUsed:     aggregate.LoyaltyPointsUsed(),
		LoyaltyPointsEarned:   aggregate.LoyaltyPointsEarned(),
		Version:               aggregate.Version(),
		CreatedAt:             createdAt,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	address, err := kernel.NewGeoPoint(dto.DeliveryLongitude, dto.DeliveryLatitude)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromString(itemDTO.MenuItemID)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, order.Item{
			MenuItemID:          menuItemID,
			Name:                itemDTO.Name,
			UnitPrice:           itemDTO.UnitPrice,
			Quantity:            itemDTO.Quantity,
			Customizations:      customizationsToDomain(itemDTO.Customizations),
			SpecialInstructions: itemDTO.SpecialInstructions,
			LineTotal:           itemDTO.LineTotal,
		})
	}

	timeline := make([]order.TimelineEntry, 0, len(dto.Timeline))
	for _, entry := range dto.Timeline {
		timeline = append(timeline, order.TimelineEntry{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			Note:      entry.Note,
		})
	}

	var rating *order.Rating
	if dto.Rating != nil {
		rating = &order.Rating{
			Value:   dto.Rating.Value,
			Comment: dto.Rating.Comment,
			RatedAt: dto.Rating.RatedAt,
		}
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		restaurantID,
		courierID,
		items,
		address,
		order.Pricing{
			Subtotal:    dto.Subtotal,
			DeliveryFee: dto.DeliveryFee,
			Tax:         dto.Tax,
			Discount:    dto.Discount,
			Tip:         dto.Tip,
			Total:       dto.Total,
		},
		order.Payment{
			Method: order.PaymentMethod(dto.PaymentMethod),
			Status: order.PaymentStatus(dto.PaymentStatus),
		},
		order.Status(dto.Status),
		timeline,
		dto.EstimatedDeliveryTime,
		dto.ActualDeliveryTime,
		dto.CancellationReason,
		rating,
		dto.LoyaltyPointsUsed,
		dto.LoyaltyPointsEarned,
		dto.Version,
	)
}
