package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for the order.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	Cash
	Card
	Wallet
	Online
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		Cash:   "Cash",
		Card:   "Card",
		Wallet: "Wallet",
		Online: "Online",
	}
}

// PaymentMethodFromString parses a payment method name, case-insensitively.
func PaymentMethodFromString(value string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if strings.EqualFold(name, value) {
			return method, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a valid payment method", value))
}

// Validate checks that the method is one of the defined payment methods.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// PaymentStatus tracks the payment's progress alongside the order.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentPending
	PaymentCompleted
	PaymentFailed
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentPending:   "Pending",
		PaymentCompleted: "Completed",
		PaymentFailed:    "Failed",
		PaymentRefunded:  "Refunded",
	}
}

// Validate checks that the status is one of the defined payment statuses.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Payment couples the chosen method with its current status.
type Payment struct {
	Method PaymentMethod
	Status PaymentStatus
}

// NewPayment creates a payment record in the Pending state.
func NewPayment(method PaymentMethod) (Payment, error) {
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}
	return Payment{Method: method, Status: PaymentPending}, nil
}

// Validate checks both the method and the status.
func (p Payment) Validate() error {
	if err := p.Method.Validate(); err != nil {
		return err
	}
	return p.Status.Validate()
}
