// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. Line items are denormalized into a jsonb column since
// they never exist outside their cart.
package cartrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for persisting cart aggregates.
type CartDTO struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID     `gorm:"type:uuid;not null"`
	Status       int           `gorm:"type:smallint;not null;index"`
	Subtotal     float64       `gorm:"type:numeric(12,2);not null"`
	Items        []LineItemDTO `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time     `gorm:"not null"`
	LastUpdated  time.Time     `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "carts".
func (CartDTO) TableName() string {
	return "carts"
}

// LineItemDTO is the jsonb representation of one cart line.
type LineItemDTO struct {
	ID                  string             `json:"id"`
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

// fromDomain converts a cart aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) CartDTO {
	items := make([]LineItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, LineItemDTO{
			ID:                  item.ID().String(),
			MenuItemID:          item.MenuItemID().String(),
			Name:                item.Name(),
			UnitPrice:           item.UnitPrice(),
			Quantity:            item.Quantity(),
			Customizations:      customizationsFromDomain(item.Customizations()),
			SpecialInstructions: item.SpecialInstructions(),
			LineTotal:           item.LineTotal(),
		})
	}

	return CartDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		Status:       int(aggregate.Status()),
		Subtotal:     aggregate.Subtotal(),
		Items:        items,
		CreatedAt:    aggregate.CreatedAt(),
		LastUpdated:  aggregate.LastUpdated(),
	}
}

// toDomain converts a database DTO to a cart aggregate using RestoreCart.
func toDomain(dto CartDTO) (*cart.Cart, error) {
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

	items := make([]*cart.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return cart.RestoreCart(
		id,
		customerID,
		restaurantID,
		items,
		cart.Status(dto.Status),
		dto.Subtotal,
		dto.CreatedAt,
		dto.LastUpdated,
	)
}

func lineItemToDomain(dto LineItemDTO) (*cart.LineItem, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.UUIDFromString(dto.MenuItemID)
	if err != nil {
		return nil, err
	}

	return cart.RestoreLineItem(
		id,
		menuItemID,
		dto.Name,
		dto.UnitPrice,
		dto.Quantity,
		customizationsToDomain(dto.Customizations),
		dto.SpecialInstructions,
		dto.LineTotal,
	)
}
