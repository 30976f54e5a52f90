package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the current state in the order lifecycle.
//
// State transitions (forward-only, no skipping):
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> PickedUp ──> OutForDelivery ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Cancellation is permitted only while
// the restaurant has not finished preparing the order.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after checkout, awaiting restaurant
	// confirmation.
	Pending

	// Confirmed means the restaurant accepted the order.
	Confirmed

	// Preparing means the kitchen is working on the order.
	Preparing

	// Ready means the order is packed and waiting for pickup.
	Ready

	// PickedUp means the courier collected the order from the restaurant.
	PickedUp

	// OutForDelivery means the courier is en route to the customer.
	OutForDelivery

	// Delivered means the order reached the customer. Terminal.
	Delivered

	// Cancelled means the order was called off before preparation finished.
	// Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		Ready:          "Ready",
		PickedUp:       "PickedUp",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		Ready:          "Ready",
		PickedUp:       "PickedUp",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// getNextStatus maps each status to the single status that may follow it on
// the delivery path. Cancelled is reached via Cancel, not via Next.
func getNextStatus() map[Status]Status {
	return map[Status]Status{
		Pending:        Confirmed,
		Confirmed:      Preparing,
		Preparing:      Ready,
		Ready:          PickedUp,
		PickedUp:       OutForDelivery,
		OutForDelivery: Delivered,
	}
}

// StatusFromString parses a status name. The comparison is case-insensitive.
func StatusFromString(value string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, value) {
			return status, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("order status",
		fmt.Errorf("%q is not a valid order status", value))
}

// Validate checks that the Status is one of the defined order states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%d is not a valid order status", s))
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
	return s == Delivered || s == Cancelled
}

// CanCancel reports whether the order may still be called off. Cancellation
// is allowed only before the kitchen finishes, i.e. from Pending, Confirmed
// or Preparing.
func (s Status) CanCancel() bool {
	return s == Pending || s == Confirmed || s == Preparing
}

// Next transitions to the target status. Only the immediately following
// status on the delivery path is reachable; skipping ahead, moving backwards
// or leaving a terminal status fails.
func (s Status) Next(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if next, ok := getNextStatus()[s]; ok && next == target {
		return target, nil
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("order status",
		fmt.Errorf("%s cannot transition to %s", s, target))
}

// Cancel transitions to Cancelled. Allowed only while CanCancel holds.
func (s Status) Cancel() (Status, error) {
	if !s.CanCancel() {
		return 0, errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}
	return Cancelled, nil
}
