package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/pkg/guard"
)

var ErrResetCourierEarningsCommandIsNotConstructed = errors.New(
	"ResetCourierEarningsCommand must be created via NewResetCourierEarningsCommand constructor",
)

// ResetCourierEarningsCommand zeroes one earnings bucket for every courier
// at the turn of its period.
type ResetCourierEarningsCommand struct { //nolint:recvcheck //using for validation
	period courier.EarningsPeriod

	guard guard.ConstructorGuard
}

// NewResetCourierEarningsCommand creates a validated earnings-reset command.
func NewResetCourierEarningsCommand(period courier.EarningsPeriod) (ResetCourierEarningsCommand, error) {
	cmd := ResetCourierEarningsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPeriod(period); err != nil {
		return ResetCourierEarningsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetCourierEarningsCommand) Validate() error {
	return c.guard.Validate(ErrResetCourierEarningsCommandIsNotConstructed)
}

// Period returns which earnings bucket to reset.
func (c ResetCourierEarningsCommand) Period() courier.EarningsPeriod {
	return c.period
}

func (c *ResetCourierEarningsCommand) setPeriod(period courier.EarningsPeriod) error {
	if err := period.Validate(); err != nil {
		return err
	}
	c.period = period
	return nil
}
