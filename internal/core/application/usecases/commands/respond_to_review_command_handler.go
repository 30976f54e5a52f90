package commands

import (
	"context"
	"time"
)

// RespondToReviewCommandHandler writes the restaurant's reply onto an
// existing review.
type RespondToReviewCommandHandler struct {
	uowFactory RestaurantUoWFactory
}

// NewRespondToReviewCommandHandler creates a handler for review responses.
func NewRespondToReviewCommandHandler(uowFactory RestaurantUoWFactory) RespondToReviewCommandHandler {
	return RespondToReviewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the restaurant, records the reply on the addressed review and
// persists the aggregate within a single transaction. Replying again
// overwrites the previous response.
func (h RespondToReviewCommandHandler) Handle(ctx context.Context, command RespondToReviewCommand) error {
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

	restaurantRepo := uow.RestaurantRepository()

	reviewed, err := restaurantRepo.Get(ctx, command.RestaurantID())
	if err != nil {
		return err
	}

	if err = reviewed.RespondToReview(command.ReviewID(), command.Text(), time.Now().UTC()); err != nil {
		return err
	}

	if err = restaurantRepo.Update(ctx, reviewed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
