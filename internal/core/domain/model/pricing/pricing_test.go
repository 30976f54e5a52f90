package pricing_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/core/domain/model/pricing"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomizationTotal(t *testing.T) {
	t.Run("sums options across groups", func(t *testing.T) {
		customizations := []menu.Customization{
			{GroupName: "Size", SelectedOptions: []menu.Option{{Name: "Large", Price: 2}}},
			{GroupName: "Toppings", SelectedOptions: []menu.Option{
				{Name: "Extra cheese", Price: 1.5},
				{Name: "Mushrooms", Price: 1},
			}},
		}

		assert.InEpsilon(t, 4.5, pricing.CustomizationTotal(customizations), 1e-9)
	})

	t.Run("no customizations sum to zero", func(t *testing.T) {
		assert.Zero(t, pricing.CustomizationTotal(nil))
	})
}

func TestLineTotal(t *testing.T) {
	t.Run("multiplies unit price plus customizations by quantity", func(t *testing.T) {
		total, err := pricing.LineTotal(10, 2.5, 3)

		require.NoError(t, err)
		assert.InEpsilon(t, 37.5, total, 1e-9)
	})

	t.Run("quantity of one returns unit price plus customizations", func(t *testing.T) {
		total, err := pricing.LineTotal(10, 0, 1)

		require.NoError(t, err)
		assert.InEpsilon(t, 10.0, total, 1e-9)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := pricing.LineTotal(-1, 0, 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		_, err := pricing.LineTotal(10, 0, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSubtotal(t *testing.T) {
	assert.InEpsilon(t, 42.5, pricing.Subtotal([]float64{30, 12.5}), 1e-9)
	assert.Zero(t, pricing.Subtotal(nil))
}

func TestOrderTotal(t *testing.T) {
	t.Run("adds fees and tip, subtracts discount", func(t *testing.T) {
		total, err := pricing.OrderTotal(30, 5, 2, 0, 3)

		require.NoError(t, err)
		assert.InEpsilon(t, 40.0, total, 1e-9)
	})

	t.Run("discount reduces the total", func(t *testing.T) {
		total, err := pricing.OrderTotal(30, 5, 2, 10, 3)

		require.NoError(t, err)
		assert.InEpsilon(t, 30.0, total, 1e-9)
	})

	t.Run("rejects negative inputs", func(t *testing.T) {
		_, err := pricing.OrderTotal(30, -5, 2, 0, 3)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a discount that would push the total negative", func(t *testing.T) {
		_, err := pricing.OrderTotal(10, 0, 0, 50, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		a, err := pricing.OrderTotal(19.99, 4.5, 1.6, 2, 3)
		require.NoError(t, err)
		b, err := pricing.OrderTotal(19.99, 4.5, 1.6, 2, 3)
		require.NoError(t, err)

		assert.InEpsilon(t, a, b, 1e-12)
	})
}
