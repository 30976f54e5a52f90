package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrSubmitOrderRatingCommandIsNotConstructed = errors.New(
	"SubmitOrderRatingCommand must be created via NewSubmitOrderRatingCommand constructor",
)

// SubmitOrderRatingCommand records the customer's rating for a delivered
// order. The rating is stamped on the order and propagated to the restaurant
// review list and, when a courier handled the delivery, to the courier.
type SubmitOrderRatingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	value   float64
	comment string

	guard guard.ConstructorGuard
}

// NewSubmitOrderRatingCommand creates a validated rating command.
func NewSubmitOrderRatingCommand(orderID kernel.UUID, value float64, comment string) (SubmitOrderRatingCommand, error) {
	cmd := SubmitOrderRatingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setValue(value),
	); err != nil {
		return SubmitOrderRatingCommand{}, err
	}

	cmd.comment = comment
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderRatingCommandIsNotConstructed)
}

// OrderID returns the rated order.
func (c SubmitOrderRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Value returns the rating value.
func (c SubmitOrderRatingCommand) Value() float64 {
	return c.value
}

// Comment returns the optional review text.
func (c SubmitOrderRatingCommand) Comment() string {
	return c.comment
}

func (c *SubmitOrderRatingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SubmitOrderRatingCommand) setValue(value float64) error {
	if err := kernel.ValidateRating(value); err != nil {
		return err
	}
	c.value = value
	return nil
}
