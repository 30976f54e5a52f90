// Package pricing computes monetary totals for line items, carts, and orders.
// All functions are pure and deterministic: given the same inputs they return
// the same totals, which keeps price computation reproducible in tests.
package pricing

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/pkg/errs"
)

// ErrInvalidPricingInput is returned when a pricing computation receives a
// negative monetary value, a quantity below one, or would produce a negative
// order total.
var ErrInvalidPricingInput = errs.NewValueIsInvalidError("pricing input")

// CustomizationTotal sums the prices of every selected option across all
// customization groups.
func CustomizationTotal(customizations []menu.Customization) float64 {
	var total float64
	for _, c := range customizations {
		for _, opt := range c.SelectedOptions {
			total += opt.Price
		}
	}
	return total
}

// LineTotal computes (unitPrice + customizationTotal) * quantity.
// Monetary inputs must be non-negative and quantity must be at least 1.
func LineTotal(unitPrice float64, customizationTotal float64, quantity int) (float64, error) {
	if unitPrice < 0 || customizationTotal < 0 {
		return 0, ErrInvalidPricingInput
	}
	if quantity < 1 {
		return 0, errs.NewValueIsInvalidErrorWithCause("pricing input",
			fmt.Errorf("quantity %d is less than 1", quantity))
	}

	return (unitPrice + customizationTotal) * float64(quantity), nil
}

// Subtotal sums the given line totals.
func Subtotal(lineTotals []float64) float64 {
	var total float64
	for _, lt := range lineTotals {
		total += lt
	}
	return total
}

// OrderTotal computes subtotal + deliveryFee + tax - discount + tip.
// All inputs must be non-negative and the result may never be negative:
// a discount exceeding the rest of the order fails instead of going below zero.
func OrderTotal(subtotal, deliveryFee, tax, discount, tip float64) (float64, error) {
	for _, v := range []float64{subtotal, deliveryFee, tax, discount, tip} {
		if v < 0 {
			return 0, ErrInvalidPricingInput
		}
	}

	total := subtotal + deliveryFee + tax - discount + tip
	if total < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("pricing input",
			fmt.Errorf("order total %.2f is negative", total))
	}

	return total, nil
}
