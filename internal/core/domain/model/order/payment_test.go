package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("should start pending for every method", func(t *testing.T) {
		for _, method := range []order.PaymentMethod{order.Cash, order.Card, order.Wallet, order.Online} {
			payment, err := order.NewPayment(method)

			require.NoError(t, err)
			assert.Equal(t, method, payment.Method)
			assert.Equal(t, order.PaymentPending, payment.Status)
			require.NoError(t, payment.Validate())
		}
	})

	t.Run("should reject unknown method", func(t *testing.T) {
		_, err := order.NewPayment(order.PaymentMethodUnknown)
		require.Error(t, err)

		_, err = order.NewPayment(order.PaymentMethod(42))
		require.Error(t, err)
	})
}

func TestPaymentMethodFromString(t *testing.T) {
	testCases := []struct {
		input    string
		expected order.PaymentMethod
	}{
		{"cash", order.Cash},
		{"Card", order.Card},
		{"WALLET", order.Wallet},
		{"online", order.Online},
	}

	for _, tc := range testCases {
		method, err := order.PaymentMethodFromString(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, method)
	}

	_, err := order.PaymentMethodFromString("bitcoin")
	require.Error(t, err)
}

func TestPaymentStatus_Validate(t *testing.T) {
	for _, status := range []order.PaymentStatus{
		order.PaymentPending, order.PaymentCompleted, order.PaymentFailed, order.PaymentRefunded,
	} {
		require.NoError(t, status.Validate())
	}

	require.Error(t, order.PaymentStatusUnknown.Validate())
	require.Error(t, order.PaymentStatus(42).Validate())
}
