package order_test

import (
	"strings"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) kernel.GeoPoint {
	t.Helper()

	address, err := kernel.NewGeoPoint(-73.9857, 40.7484)
	require.NoError(t, err)
	return address
}

func testItems() []order.Item {
	return []order.Item{{
		MenuItemID: kernel.NewUUID(),
		Name:       "Burger",
		UnitPrice:  10.00,
		Quantity:   3,
		LineTotal:  30.00,
	}}
}

func newTestOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()

	pricing, err := order.NewPricing(30.00, 5.00, 2.00, 0, 3.00)
	require.NoError(t, err)
	payment, err := order.NewPayment(order.Card)
	require.NoError(t, err)

	o, err := order.NewOrder(
		order.NewOrderNumber(now, 1),
		kernel.NewUUID(),
		kernel.NewUUID(),
		testItems(),
		testAddress(t),
		pricing,
		payment,
		now.Add(45*time.Minute),
		0, 40,
		now,
	)
	require.NoError(t, err)
	return o
}

func TestNewPricing(t *testing.T) {
	t.Run("should compute total from parts", func(t *testing.T) {
		pricing, err := order.NewPricing(30.00, 5.00, 2.00, 0, 3.00)

		require.NoError(t, err)
		assert.InDelta(t, 40.00, pricing.Total, 0.001)
	})

	t.Run("should reject negative inputs", func(t *testing.T) {
		_, err := order.NewPricing(-1, 0, 0, 0, 0)
		require.Error(t, err)

		_, err = order.NewPricing(10, 0, 0, -5, 0)
		require.Error(t, err)
	})

	t.Run("should reject a discount driving the total negative", func(t *testing.T) {
		_, err := order.NewPricing(10, 0, 0, 50, 0)
		require.Error(t, err)
	})
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	number := order.NewOrderNumber(now, 7)

	assert.True(t, strings.HasPrefix(number, "ORD"))
	assert.True(t, strings.HasSuffix(number, "0007"))
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should create pending order with initial timeline entry", func(t *testing.T) {
		o := newTestOrder(t, now)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.CourierID())
		assert.Nil(t, o.ActualDeliveryTime())
		assert.Nil(t, o.Rating())
		assert.Equal(t, order.PaymentPending, o.Payment().Status)
		assert.Zero(t, o.Version())

		require.Len(t, o.Timeline(), 1)
		assert.Equal(t, "Pending", o.Timeline()[0].Status)
		assert.Equal(t, now, o.Timeline()[0].Timestamp)
		assert.Equal(t, "Order placed", o.Timeline()[0].Note)

		require.NoError(t, o.Validate())
	})

	t.Run("should reject missing order number and empty items", func(t *testing.T) {
		pricing, err := order.NewPricing(30, 5, 2, 0, 3)
		require.NoError(t, err)
		payment, err := order.NewPayment(order.Cash)
		require.NoError(t, err)

		_, err = order.NewOrder("", kernel.NewUUID(), kernel.NewUUID(), testItems(),
			testAddress(t), pricing, payment, now, 0, 0, now)
		require.Error(t, err)

		_, err = order.NewOrder("ORD1", kernel.NewUUID(), kernel.NewUUID(), nil,
			testAddress(t), pricing, payment, now, 0, 0, now)
		require.Error(t, err)
	})

	t.Run("should reject order not created via constructor", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestItemsFromCart(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should snapshot cart items by value", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		customizations := []menu.Customization{
			{GroupName: "Size", SelectedOptions: []menu.Option{{Name: "Large", Price: 2.00}}},
		}
		line, err := c.AddItem(c.RestaurantID(), kernel.NewUUID(), "Burger", 10.00, 2, customizations, "no onions", now)
		require.NoError(t, err)

		items, err := order.ItemsFromCart(c.Items())

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, line.MenuItemID(), items[0].MenuItemID)
		assert.Equal(t, 2, items[0].Quantity)
		assert.InDelta(t, 24.00, items[0].LineTotal, 0.001)
		assert.Equal(t, "no onions", items[0].SpecialInstructions)

		// Later cart changes must not leak into the snapshot.
		require.NoError(t, c.UpdateItemQuantity(line.ID(), 5, now))
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("should reject empty cart", func(t *testing.T) {
		_, err := order.ItemsFromCart(nil)
		require.Error(t, err)
	})
}

func TestOrder_Transition(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should walk the full path and keep the timeline in step", func(t *testing.T) {
		o := newTestOrder(t, now)
		path := []order.Status{
			order.Confirmed, order.Preparing, order.Ready,
			order.PickedUp, order.OutForDelivery, order.Delivered,
		}

		ts := now
		for _, target := range path {
			ts = ts.Add(5 * time.Minute)
			require.NoError(t, o.Transition(target, "", ts))

			last := o.Timeline()[len(o.Timeline())-1]
			assert.Equal(t, o.Status().String(), last.Status)
			assert.Equal(t, ts, last.Timestamp)
		}

		assert.Equal(t, order.Delivered, o.Status())
		assert.Len(t, o.Timeline(), 1+len(path))
	})

	t.Run("should default the timeline note", func(t *testing.T) {
		o := newTestOrder(t, now)

		require.NoError(t, o.Transition(order.Confirmed, "", now))

		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, "Order confirmed", last.Note)
	})

	t.Run("should keep an explicit note", func(t *testing.T) {
		o := newTestOrder(t, now)

		require.NoError(t, o.Transition(order.Confirmed, "Restaurant accepted", now))

		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, "Restaurant accepted", last.Note)
	})

	t.Run("should stamp delivery time and complete payment on Delivered", func(t *testing.T) {
		o := newTestOrder(t, now)
		for _, target := range []order.Status{
			order.Confirmed, order.Preparing, order.Ready,
			order.PickedUp, order.OutForDelivery,
		} {
			require.NoError(t, o.Transition(target, "", now))
		}
		deliveredAt := now.Add(40 * time.Minute)

		require.NoError(t, o.Transition(order.Delivered, "", deliveredAt))

		require.NotNil(t, o.ActualDeliveryTime())
		assert.Equal(t, deliveredAt, *o.ActualDeliveryTime())
		assert.Equal(t, order.PaymentCompleted, o.Payment().Status)
	})

	t.Run("should reject non-adjacent transitions without touching the timeline", func(t *testing.T) {
		o := newTestOrder(t, now)

		err := o.Transition(order.Delivered, "", now)

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.Timeline(), 1)
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should cancel pending order with reason", func(t *testing.T) {
		o := newTestOrder(t, now)

		err := o.Cancel("Customer changed mind", now)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "Customer changed mind", o.CancellationReason())

		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, "Cancelled", last.Status)
		assert.Equal(t, "Customer changed mind", last.Note)
	})

	t.Run("should default the timeline note when reason is empty", func(t *testing.T) {
		o := newTestOrder(t, now)

		require.NoError(t, o.Cancel("", now))

		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, "Order cancelled", last.Note)
	})

	t.Run("should reject cancellation once the order is ready", func(t *testing.T) {
		o := newTestOrder(t, now)
		for _, target := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
			require.NoError(t, o.Transition(target, "", now))
		}

		err := o.Cancel("too late", now)

		require.Error(t, err)
		assert.Equal(t, order.Ready, o.Status())
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should record courier and append Assigned entry without changing status", func(t *testing.T) {
		o := newTestOrder(t, now)
		for _, target := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
			require.NoError(t, o.Transition(target, "", now))
		}
		courierID := kernel.NewUUID()

		err := o.AssignCourier(courierID, now)

		require.NoError(t, err)
		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
		assert.Equal(t, order.Ready, o.Status())

		last := o.Timeline()[len(o.Timeline())-1]
		assert.Equal(t, "Assigned", last.Status)
		assert.Equal(t, "Delivery person assigned", last.Note)
	})

	t.Run("should reject invalid courier id", func(t *testing.T) {
		o := newTestOrder(t, now)

		err := o.AssignCourier(kernel.UUID{}, now)

		require.Error(t, err)
		assert.Nil(t, o.CourierID())
	})

	t.Run("should reject assignment on terminal orders", func(t *testing.T) {
		o := newTestOrder(t, now)
		require.NoError(t, o.Cancel("", now))

		err := o.AssignCourier(kernel.NewUUID(), now)

		require.Error(t, err)
	})
}

func TestOrder_AddRating(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	deliver := func(t *testing.T, o *order.Order) {
		t.Helper()
		for _, target := range []order.Status{
			order.Confirmed, order.Preparing, order.Ready,
			order.PickedUp, order.OutForDelivery, order.Delivered,
		} {
			require.NoError(t, o.Transition(target, "", now))
		}
	}

	t.Run("should rate a delivered order", func(t *testing.T) {
		o := newTestOrder(t, now)
		deliver(t, o)
		ratedAt := now.Add(time.Hour)

		err := o.AddRating(4.5, "great burger", ratedAt)

		require.NoError(t, err)
		require.NotNil(t, o.Rating())
		assert.InDelta(t, 4.5, o.Rating().Value, 0.001)
		assert.Equal(t, "great burger", o.Rating().Comment)
		assert.Equal(t, ratedAt, o.Rating().RatedAt)
	})

	t.Run("should overwrite a previous rating", func(t *testing.T) {
		o := newTestOrder(t, now)
		deliver(t, o)
		require.NoError(t, o.AddRating(3, "ok", now))

		err := o.AddRating(5, "actually great", now.Add(time.Minute))

		require.NoError(t, err)
		assert.InDelta(t, 5, o.Rating().Value, 0.001)
		assert.Equal(t, "actually great", o.Rating().Comment)
	})

	t.Run("should reject rating before delivery", func(t *testing.T) {
		o := newTestOrder(t, now)

		err := o.AddRating(5, "", now)

		require.Error(t, err)
		assert.Nil(t, o.Rating())
	})

	t.Run("should reject rating outside 1 to 5", func(t *testing.T) {
		o := newTestOrder(t, now)
		deliver(t, o)

		require.Error(t, o.AddRating(0, "", now))
		require.Error(t, o.AddRating(5.5, "", now))
	})
}

func TestRestoreOrder(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should restore order from persistence", func(t *testing.T) {
		id := kernel.NewUUID()
		courierID := kernel.NewUUID()
		pricing, err := order.NewPricing(30, 5, 2, 0, 3)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			id, "ORD17467584000001", kernel.NewUUID(), kernel.NewUUID(), &courierID,
			testItems(), testAddress(t), pricing,
			order.Payment{Method: order.Card, Status: order.PaymentPending},
			order.Ready,
			[]order.TimelineEntry{{Status: "Pending", Timestamp: now, Note: "Order placed"}},
			now.Add(45*time.Minute), nil, "", nil, 0, 40, 3,
		)

		require.NoError(t, err)
		assert.Equal(t, id, o.ID())
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, 3, o.Version())
		require.NoError(t, o.Validate())
	})

	t.Run("should reject invalid status and negative version", func(t *testing.T) {
		pricing, err := order.NewPricing(30, 5, 2, 0, 3)
		require.NoError(t, err)
		payment := order.Payment{Method: order.Card, Status: order.PaymentPending}

		_, err = order.RestoreOrder(
			kernel.NewUUID(), "ORD1", kernel.NewUUID(), kernel.NewUUID(), nil,
			testItems(), testAddress(t), pricing, payment,
			order.Unknown, nil, now, nil, "", nil, 0, 0, 0,
		)
		require.Error(t, err)

		_, err = order.RestoreOrder(
			kernel.NewUUID(), "ORD1", kernel.NewUUID(), kernel.NewUUID(), nil,
			testItems(), testAddress(t), pricing, payment,
			order.Pending, nil, now, nil, "", nil, 0, 0, -1,
		)
		require.Error(t, err)
	})
}
