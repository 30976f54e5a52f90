package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand converts the customer's active cart into a placed order.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID            kernel.UUID
	deliveryAddress       kernel.GeoPoint
	paymentMethod         order.PaymentMethod
	tip                   float64
	loyaltyPointsToRedeem int

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a validated checkout command.
func NewCheckoutCommand(
	customerID kernel.UUID,
	deliveryAddress kernel.GeoPoint,
	paymentMethod order.PaymentMethod,
	tip float64,
	loyaltyPointsToRedeem int,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setTip(tip),
		cmd.setLoyaltyPointsToRedeem(loyaltyPointsToRedeem),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// CustomerID returns the customer placing the order.
func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DeliveryAddress returns where the order should be delivered.
func (c CheckoutCommand) DeliveryAddress() kernel.GeoPoint {
	return c.deliveryAddress
}

// PaymentMethod returns how the customer pays.
func (c CheckoutCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Tip returns the optional courier tip.
func (c CheckoutCommand) Tip() float64 {
	return c.tip
}

// LoyaltyPointsToRedeem returns how many points to convert into a discount.
func (c CheckoutCommand) LoyaltyPointsToRedeem() int {
	return c.loyaltyPointsToRedeem
}

func (c *CheckoutCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(deliveryAddress kernel.GeoPoint) error {
	if err := deliveryAddress.Validate(); err != nil {
		return err
	}
	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	c.paymentMethod = paymentMethod
	return nil
}

func (c *CheckoutCommand) setTip(tip float64) error {
	if tip < 0 {
		return errs.NewValueIsInvalidErrorWithCause("tip",
			fmt.Errorf("%.2f is negative", tip))
	}
	c.tip = tip
	return nil
}

func (c *CheckoutCommand) setLoyaltyPointsToRedeem(points int) error {
	if points < 0 {
		return errs.NewValueIsInvalidErrorWithCause("loyalty points to redeem",
			fmt.Errorf("%d is negative", points))
	}
	c.loyaltyPointsToRedeem = points
	return nil
}
