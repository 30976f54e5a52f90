package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRespondToReviewCommandIsNotConstructed = errors.New(
	"RespondToReviewCommand must be created via NewRespondToReviewCommand constructor",
)

// RespondToReviewCommand attaches the restaurant's public reply to one of
// its customer reviews.
type RespondToReviewCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	reviewID     kernel.UUID
	text         string

	guard guard.ConstructorGuard
}

// NewRespondToReviewCommand creates a validated review-response command.
func NewRespondToReviewCommand(
	restaurantID kernel.UUID,
	reviewID kernel.UUID,
	text string,
) (RespondToReviewCommand, error) {
	cmd := RespondToReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRestaurantID(restaurantID),
		cmd.setReviewID(reviewID),
		cmd.setText(text),
	); err != nil {
		return RespondToReviewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RespondToReviewCommand) Validate() error {
	return c.guard.Validate(ErrRespondToReviewCommandIsNotConstructed)
}

// RestaurantID returns the reviewed restaurant.
func (c RespondToReviewCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// ReviewID returns the review being answered.
func (c RespondToReviewCommand) ReviewID() kernel.UUID {
	return c.reviewID
}

// Text returns the reply body.
func (c RespondToReviewCommand) Text() string {
	return c.text
}

func (c *RespondToReviewCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *RespondToReviewCommand) setReviewID(reviewID kernel.UUID) error {
	if err := reviewID.Validate(); err != nil {
		return err
	}
	c.reviewID = reviewID
	return nil
}

func (c *RespondToReviewCommand) setText(text string) error {
	if text == "" {
		return errs.NewValueIsRequiredError("text")
	}
	c.text = text
	return nil
}
