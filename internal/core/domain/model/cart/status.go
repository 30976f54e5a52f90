package cart

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a shopping cart.
//
// State transitions:
//
//	Active ──┬──> Checkout ──> Completed
//	         │
//	         └──> Abandoned
//
// A cart is mutable only while Active. Checkout freezes it for order
// conversion; Completed and Abandoned are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Active is the initial status: the customer is still editing the cart.
	Active

	// Checkout marks a cart frozen for conversion into an order.
	Checkout

	// Completed marks a cart that has been converted into an order.
	// This is a terminal state.
	Completed

	// Abandoned marks an Active cart that went stale and was swept.
	// This is a terminal state.
	Abandoned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Active:    "Active",
		Checkout:  "Checkout",
		Completed: "Completed",
		Abandoned: "Abandoned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Active:    "Active",
		Checkout:  "Checkout",
		Completed: "Completed",
		Abandoned: "Abandoned",
	}
}

// Validate checks that the Status is one of the defined cart states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("cart status",
			fmt.Errorf("%d is not a valid cart status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Abandoned
}

// BeginCheckout transitions Active -> Checkout.
func (s Status) BeginCheckout() (Status, error) {
	if s != Active {
		return 0, errs.NewValueIsInvalidErrorWithCause("cart status",
			fmt.Errorf("%s is not a valid status to begin checkout", s))
	}
	return Checkout, nil
}

// Complete transitions Checkout -> Completed.
func (s Status) Complete() (Status, error) {
	if s != Checkout {
		return 0, errs.NewValueIsInvalidErrorWithCause("cart status",
			fmt.Errorf("%s is not a valid status to complete", s))
	}
	return Completed, nil
}

// Abandon transitions Active -> Abandoned.
func (s Status) Abandon() (Status, error) {
	if s != Active {
		return 0, errs.NewValueIsInvalidErrorWithCause("cart status",
			fmt.Errorf("%s is not a valid status to abandon", s))
	}
	return Abandoned, nil
}
