package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/order"
)

// ErrRestaurantIsClosed is returned when checkout targets a restaurant that
// is not currently accepting orders.
var ErrRestaurantIsClosed = errors.New("restaurant is closed")

const (
	// loyaltyPointValue is the currency discount granted per redeemed point.
	loyaltyPointValue = 0.01

	// estimatedDeliveryLead is the default promise made at checkout.
	estimatedDeliveryLead = 45 * time.Minute
)

// CheckoutCommandHandler converts the customer's active cart into an order.
// The cart is frozen, priced against the restaurant's fees, combined with
// loyalty redemption, and completed in the same transaction that persists
// the new order.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(uowFactory CheckoutUoWFactory) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the checkout command and returns the new order number.
// Loads the active cart, verifies the restaurant is open, redeems loyalty
// points, snapshots the cart into order items, and persists the order, the
// completed cart and the updated customer atomically.
func (h CheckoutCommandHandler) Handle(ctx context.Context, command CheckoutCommand) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	orderRepo := uow.OrderRepository()
	restaurantRepo := uow.RestaurantRepository()
	customerRepo := uow.CustomerRepository()
	now := time.Now().UTC()

	customerCart, err := cartRepo.GetActiveByCustomer(ctx, command.CustomerID())
	if err != nil {
		return "", err
	}

	diningRestaurant, err := restaurantRepo.Get(ctx, customerCart.RestaurantID())
	if err != nil {
		return "", err
	}
	if !diningRestaurant.IsOpen() {
		return "", ErrRestaurantIsClosed
	}

	if err = customerCart.BeginCheckout(now); err != nil {
		return "", err
	}

	orderCustomer, err := customerRepo.Get(ctx, command.CustomerID())
	if err != nil {
		return "", err
	}

	pointsUsed := command.LoyaltyPointsToRedeem()
	if pointsUsed > 0 {
		if err = orderCustomer.DeductLoyaltyPoints(pointsUsed); err != nil {
			return "", err
		}
	}
	discount := float64(pointsUsed) * loyaltyPointValue

	subtotal := customerCart.Subtotal()
	orderPricing, err := order.NewPricing(
		subtotal,
		diningRestaurant.DeliveryFee(),
		subtotal*diningRestaurant.TaxRate(),
		discount,
		command.Tip(),
	)
	if err != nil {
		return "", err
	}

	pointsEarned := int(orderPricing.Total)
	if err = orderCustomer.AddLoyaltyPoints(pointsEarned); err != nil {
		return "", err
	}

	items, err := order.ItemsFromCart(customerCart.Items())
	if err != nil {
		return "", err
	}

	payment, err := order.NewPayment(command.PaymentMethod())
	if err != nil {
		return "", err
	}

	placed, err := orderRepo.Count(ctx)
	if err != nil {
		return "", err
	}

	newOrder, err := order.NewOrder(
		order.NewOrderNumber(now, placed+1),
		command.CustomerID(),
		customerCart.RestaurantID(),
		items,
		command.DeliveryAddress(),
		orderPricing,
		payment,
		now.Add(estimatedDeliveryLead),
		pointsUsed,
		pointsEarned,
		now,
	)
	if err != nil {
		return "", err
	}

	if err = customerCart.Complete(now); err != nil {
		return "", err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return "", err
	}
	if err = cartRepo.Update(ctx, customerCart); err != nil {
		return "", err
	}
	if err = customerRepo.Update(ctx, orderCustomer); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return newOrder.OrderNumber(), nil
}
