package commands

import (
	"context"
	"time"
)

// SubmitOrderRatingCommandHandler records a customer rating on a delivered
// order and fans it out to the restaurant review list and the courier who
// made the delivery.
type SubmitOrderRatingCommandHandler struct {
	uowFactory RatingUoWFactory
}

// NewSubmitOrderRatingCommandHandler creates a handler for rating submission.
func NewSubmitOrderRatingCommandHandler(uowFactory RatingUoWFactory) SubmitOrderRatingCommandHandler {
	return SubmitOrderRatingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stamps the rating on the order, upserts the customer's restaurant
// review and credits the courier's rating history, all in one transaction.
// Fails when the order has not been delivered yet.
func (h SubmitOrderRatingCommandHandler) Handle(ctx context.Context, command SubmitOrderRatingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	restaurantRepo := uow.RestaurantRepository()
	courierRepo := uow.CourierRepository()
	now := time.Now().UTC()

	ratedOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = ratedOrder.AddRating(command.Value(), command.Comment(), now); err != nil {
		return err
	}

	ratedRestaurant, err := restaurantRepo.Get(ctx, ratedOrder.RestaurantID())
	if err != nil {
		return err
	}
	if err = ratedRestaurant.AddReview(ratedOrder.CustomerID(), command.Value(), command.Comment(), nil, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ratedOrder); err != nil {
		return err
	}
	if err = restaurantRepo.Update(ctx, ratedRestaurant); err != nil {
		return err
	}

	if courierID := ratedOrder.CourierID(); courierID != nil {
		ratedCourier, err := courierRepo.Get(ctx, *courierID)
		if err != nil {
			return err
		}
		if err = ratedCourier.AddRating(ratedOrder.ID(), command.Value(), command.Comment(), now); err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, ratedCourier); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
