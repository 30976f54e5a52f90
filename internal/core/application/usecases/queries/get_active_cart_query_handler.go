package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveCartQueryHandler reads the customer's active cart straight from
// the carts table, including the denormalized line items.
type GetActiveCartQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveCartQueryHandler creates a handler for active cart queries.
func NewGetActiveCartQueryHandler(db *gorm.DB) GetActiveCartQueryHandler {
	return GetActiveCartQueryHandler{db: db}
}

type cartItemRow struct {
	ID                  string  `json:"id"`
	MenuItemID          string  `json:"menu_item_id"`
	Name                string  `json:"name"`
	UnitPrice           float64 `json:"unit_price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions"`
	LineTotal           float64 `json:"line_total"`
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// customer has no active cart.
func (h GetActiveCartQueryHandler) Handle(
	ctx context.Context,
	query GetActiveCartQuery,
) (GetActiveCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveCartQueryResponse{}, err
	}

	var (
		id           uuid.UUID
		restaurantID uuid.UUID
		subtotal     float64
		itemsJSON    []byte
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			subtotal,
			items
		FROM carts
		WHERE customer_id = ? AND status = ?
	`, query.CustomerID().String(), cart.Active).Row()

	if err := row.Scan(&id, &restaurantID, &subtotal, &itemsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetActiveCartQueryResponse{}, errs.NewObjectNotFoundError(
				"active cart", query.CustomerID().String())
		}
		return GetActiveCartQueryResponse{}, err
	}

	cartID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveCartQueryResponse{}, err
	}
	cartRestaurantID, err := kernel.UUIDFromBytes(restaurantID[:])
	if err != nil {
		return GetActiveCartQueryResponse{}, err
	}

	var rows []cartItemRow
	if len(itemsJSON) > 0 {
		if err = json.Unmarshal(itemsJSON, &rows); err != nil {
			return GetActiveCartQueryResponse{}, err
		}
	}

	items := make([]CartItemResponse, 0, len(rows))
	for _, r := range rows {
		itemID, idErr := kernel.UUIDFromString(r.ID)
		if idErr != nil {
			return GetActiveCartQueryResponse{}, idErr
		}
		menuItemID, idErr := kernel.UUIDFromString(r.MenuItemID)
		if idErr != nil {
			return GetActiveCartQueryResponse{}, idErr
		}

		items = append(items, CartItemResponse{
			ID:                  itemID,
			MenuItemID:          menuItemID,
			Name:                r.Name,
			UnitPrice:           r.UnitPrice,
			Quantity:            r.Quantity,
			SpecialInstructions: r.SpecialInstructions,
			LineTotal:           r.LineTotal,
		})
	}

	return GetActiveCartQueryResponse{
		ID:           cartID,
		RestaurantID: cartRestaurantID,
		Subtotal:     subtotal,
		Items:        items,
	}, nil
}
