// Package http exposes the application's use cases over a JSON REST API
// built on echo.
package http

import "time"

// defaultCourierLeaderboardSize is how many couriers the leaderboard returns
// when the caller does not pass a limit.
const defaultCourierLeaderboardSize = 10

// Error is the JSON body returned for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Cart is the customer's active cart view.
type Cart struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurantId"`
	Subtotal     float64    `json:"subtotal"`
	Items        []CartItem `json:"items"`
}

// CartItem is a single line of the cart view.
type CartItem struct {
	ID                  string  `json:"id"`
	MenuItemID          string  `json:"menuItemId"`
	Name                string  `json:"name"`
	UnitPrice           float64 `json:"unitPrice"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	LineTotal           float64 `json:"lineTotal"`
}

// AddCartItemRequest adds a menu item to the customer's cart.
type AddCartItemRequest struct {
	RestaurantID        string                 `json:"restaurantId"`
	MenuItemID          string                 `json:"menuItemId"`
	Name                string                 `json:"name"`
	UnitPrice           float64                `json:"unitPrice"`
	Quantity            int                    `json:"quantity"`
	Customizations      []CustomizationRequest `json:"customizations,omitempty"`
	SpecialInstructions string                 `json:"specialInstructions,omitempty"`
	SwitchRestaurant    bool                   `json:"switchRestaurant,omitempty"`
}

// CustomizationRequest is one named group of selected options.
type CustomizationRequest struct {
	GroupName       string          `json:"groupName"`
	SelectedOptions []OptionRequest `json:"selectedOptions"`
}

// OptionRequest is a single selected option inside a customization group.
type OptionRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// UpdateQuantityRequest changes a cart line's quantity. Zero or a negative
// value removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest converts the customer's active cart into an order.
type CheckoutRequest struct {
	DeliveryLongitude     float64 `json:"deliveryLongitude"`
	DeliveryLatitude      float64 `json:"deliveryLatitude"`
	PaymentMethod         string  `json:"paymentMethod"`
	Tip                   float64 `json:"tip,omitempty"`
	LoyaltyPointsToRedeem int     `json:"loyaltyPointsToRedeem,omitempty"`
}

// CheckoutResponse carries the number of the newly placed order.
type CheckoutResponse struct {
	OrderNumber string `json:"orderNumber"`
}

// ChangeOrderStatusRequest advances an order along its lifecycle or
// cancels it.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// SubmitRatingRequest rates a delivered order.
type SubmitRatingRequest struct {
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}

// UpdateLocationRequest reports a courier's current position.
type UpdateLocationRequest struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// RespondToReviewRequest carries the restaurant's public reply to a review.
type RespondToReviewRequest struct {
	Text string `json:"text"`
}

// ActiveOrder is one in-flight order row.
type ActiveOrder struct {
	ID                    string    `json:"id"`
	OrderNumber           string    `json:"orderNumber"`
	Status                string    `json:"status"`
	EstimatedDeliveryTime time.Time `json:"estimatedDeliveryTime"`
	DeliveryLongitude     float64   `json:"deliveryLongitude"`
	DeliveryLatitude      float64   `json:"deliveryLatitude"`
}

// TopCourier is one courier leaderboard row.
type TopCourier struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AverageRating   float64 `json:"averageRating"`
	TotalDeliveries int     `json:"totalDeliveries"`
}
