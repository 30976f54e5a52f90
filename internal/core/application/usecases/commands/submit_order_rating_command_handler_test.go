package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRatingUoW struct{ mock.Mock }

func (m *MockRatingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRatingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRatingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRatingUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockRatingUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

func (m *MockRatingUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockRatingUoWFactory struct{ mock.Mock }

func (m *MockRatingUoWFactory) Create() commands.RatingUoW {
	args := m.Called()
	return args.Get(0).(commands.RatingUoW)
}

func newDeliveredOrderWithCourier(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()

	now := time.Now().UTC()
	deliveredOrder := newPendingOrder(t)
	require.NoError(t, deliveredOrder.Transition(order.Confirmed, "", now))
	require.NoError(t, deliveredOrder.Transition(order.Preparing, "", now))
	require.NoError(t, deliveredOrder.Transition(order.Ready, "", now))

	courierID := kernel.NewUUID()
	require.NoError(t, deliveredOrder.AssignCourier(courierID, now))

	require.NoError(t, deliveredOrder.Transition(order.PickedUp, "", now))
	require.NoError(t, deliveredOrder.Transition(order.OutForDelivery, "", now))
	require.NoError(t, deliveredOrder.Transition(order.Delivered, "", now))

	return deliveredOrder, courierID
}

func TestSubmitOrderRatingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	deliveredOrder, courierID := newDeliveredOrderWithCourier(t)
	ratedCourier := newDeliverableCourier(t, "John Doe", 30.301, 59.931)
	ratedRestaurant := newPickupRestaurant(t, 30.30, 59.93)

	cmd, err := commands.NewSubmitOrderRatingCommand(deliveredOrder.ID(), 4.5, "fast and hot")
	require.NoError(t, err)

	orderRepo := new(MockAssignOrderRepository)
	restaurantRepo := new(MockAssignRestaurantRepository)
	courierRepo := new(MockAssignCourierRepository)
	uow := new(MockRatingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("Get", ctx, deliveredOrder.ID()).Return(deliveredOrder, nil).Once(),
		restaurantRepo.On("Get", ctx, deliveredOrder.RestaurantID()).Return(ratedRestaurant, nil).Once(),
		orderRepo.On("Update", ctx, deliveredOrder).Return(nil).Once(),
		restaurantRepo.On("Update", ctx, ratedRestaurant).Return(nil).Once(),
		courierRepo.On("Get", ctx, courierID).Return(ratedCourier, nil).Once(),
		courierRepo.On("Update", ctx, ratedCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRatingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitOrderRatingCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	require.NotNil(t, deliveredOrder.Rating())
	assert.InDelta(t, 4.5, deliveredOrder.Rating().Value, 0.001)

	require.Len(t, ratedRestaurant.Reviews(), 1)
	assert.InDelta(t, 4.5, ratedRestaurant.AverageRating(), 0.001)

	assert.Equal(t, 1, ratedCourier.Stats().TotalRatings)
	assert.InDelta(t, 4.5, ratedCourier.Stats().AverageRating, 0.001)

	orderRepo.AssertExpectations(t)
	restaurantRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSubmitOrderRatingCommandHandler_Handle_NotDelivered(t *testing.T) {
	ctx := t.Context()
	pendingOrder := newPendingOrder(t)

	cmd, err := commands.NewSubmitOrderRatingCommand(pendingOrder.ID(), 4, "")
	require.NoError(t, err)

	orderRepo := new(MockAssignOrderRepository)
	restaurantRepo := new(MockAssignRestaurantRepository)
	courierRepo := new(MockAssignCourierRepository)
	uow := new(MockRatingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		orderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRatingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitOrderRatingCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, pendingOrder.Rating())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitOrderRatingCommand_RejectsOutOfRangeValue(t *testing.T) {
	_, err := commands.NewSubmitOrderRatingCommand(kernel.NewUUID(), 5.5, "")
	require.Error(t, err)

	_, err = commands.NewSubmitOrderRatingCommand(kernel.NewUUID(), 0.5, "")
	require.Error(t, err)
}
