package commands

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrSweepAbandonedCartsCommandIsNotConstructed = errors.New(
	"SweepAbandonedCartsCommand must be created via NewSweepAbandonedCartsCommand constructor",
)

// SweepAbandonedCartsCommand transitions every active cart that has been idle
// longer than the given duration to the abandoned state.
type SweepAbandonedCartsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewSweepAbandonedCartsCommand creates a validated sweep command.
func NewSweepAbandonedCartsCommand(olderThan time.Duration) (SweepAbandonedCartsCommand, error) {
	cmd := SweepAbandonedCartsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOlderThan(olderThan); err != nil {
		return SweepAbandonedCartsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepAbandonedCartsCommand) Validate() error {
	return c.guard.Validate(ErrSweepAbandonedCartsCommandIsNotConstructed)
}

// OlderThan returns the idle duration after which a cart counts as abandoned.
func (c SweepAbandonedCartsCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c *SweepAbandonedCartsCommand) setOlderThan(olderThan time.Duration) error {
	if olderThan <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("older than",
			fmt.Errorf("%s is not positive", olderThan))
	}
	c.olderThan = olderThan
	return nil
}
