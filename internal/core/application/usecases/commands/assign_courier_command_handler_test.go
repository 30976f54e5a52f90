package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssignOrderRepository struct{ mock.Mock }

func (m *MockAssignOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockAssignOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockAssignOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockAssignOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockAssignOrderRepository) GetFirstReadyUnassigned(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockAssignOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAssignCourierRepository struct{ mock.Mock }

func (m *MockAssignCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockAssignCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockAssignCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockAssignCourierRepository) GetAvailableNear(
	ctx context.Context,
	pickup kernel.GeoPoint,
	maxDistanceMeters float64,
) ([]*courier.Courier, error) {
	args := m.Called(ctx, pickup, maxDistanceMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockAssignCourierRepository) ResetEarnings(
	ctx context.Context,
	period courier.EarningsPeriod,
) (int64, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(int64), args.Error(1)
}

type MockAssignRestaurantRepository struct{ mock.Mock }

func (m *MockAssignRestaurantRepository) Add(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockAssignRestaurantRepository) Update(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockAssignRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

type MockAssignUoW struct{ mock.Mock }

func (m *MockAssignUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockAssignUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockAssignUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

func (m *MockAssignUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

type MockAssignUoWFactory struct{ mock.Mock }

func (m *MockAssignUoWFactory) Create() commands.OrderCourierUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderCourierUoW)
}

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()

	address, err := kernel.NewGeoPoint(30.31, 59.93)
	require.NoError(t, err)
	orderPricing, err := order.NewPricing(20, 2.5, 2, 0, 0)
	require.NoError(t, err)
	payment, err := order.NewPayment(order.Card)
	require.NoError(t, err)

	now := time.Now().UTC()
	items := []order.Item{{
		MenuItemID: kernel.NewUUID(),
		Name:       "Margherita",
		UnitPrice:  10,
		Quantity:   2,
		LineTotal:  20,
	}}

	readyOrder, err := order.NewOrder(
		order.NewOrderNumber(now, 1),
		kernel.NewUUID(),
		kernel.NewUUID(),
		items,
		address,
		orderPricing,
		payment,
		now.Add(45*time.Minute),
		0, 0,
		now,
	)
	require.NoError(t, err)

	require.NoError(t, readyOrder.Transition(order.Confirmed, "", now))
	require.NoError(t, readyOrder.Transition(order.Preparing, "", now))
	require.NoError(t, readyOrder.Transition(order.Ready, "", now))

	return readyOrder
}

func newDeliverableCourier(t *testing.T, name string, longitude, latitude float64) *courier.Courier {
	t.Helper()

	location, err := kernel.NewGeoPoint(longitude, latitude)
	require.NoError(t, err)

	c, err := courier.NewCourier(name, location, time.Now().UTC())
	require.NoError(t, err)

	c.SetVerified(true)
	c.SetOnline(true)
	c.SetAvailable(true)
	return c
}

func newPickupRestaurant(t *testing.T, longitude, latitude float64) *restaurant.Restaurant {
	t.Helper()

	location, err := kernel.NewGeoPoint(longitude, latitude)
	require.NoError(t, err)

	r, err := restaurant.NewRestaurant("Pizza Corner", location, 2.5, 0.1)
	require.NoError(t, err)
	return r
}

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignCourierCommand()

	readyOrder := newReadyOrder(t)
	pickupRestaurant := newPickupRestaurant(t, 30.30, 59.93)
	testCourier := newDeliverableCourier(t, "John Doe", 30.301, 59.931)
	testCouriers := []*courier.Courier{testCourier}

	orderRepo := new(MockAssignOrderRepository)
	courierRepo := new(MockAssignCourierRepository)
	restaurantRepo := new(MockAssignRestaurantRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		orderRepo.On("GetFirstReadyUnassigned", ctx).Return(readyOrder, nil).Once(),
		restaurantRepo.On("Get", ctx, readyOrder.RestaurantID()).Return(pickupRestaurant, nil).Once(),
		courierRepo.On("GetAvailableNear", ctx, pickupRestaurant.Location(), 5000.0).
			Return(testCouriers, nil).
			Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		courierRepo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, readyOrder.CourierID())
	assert.True(t, readyOrder.CourierID().IsEqual(testCourier.ID()))
	assert.False(t, testCourier.IsAvailable())
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	restaurantRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignCourierCommand{} // not constructed properly

	factory := new(MockAssignUoWFactory)
	handler := commands.NewAssignCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignCourierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignCourierCommandHandler_Handle_NoOrderFound(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignCourierCommand()

	orderRepo := new(MockAssignOrderRepository)
	courierRepo := new(MockAssignCourierRepository)
	restaurantRepo := new(MockAssignRestaurantRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		orderRepo.On("GetFirstReadyUnassigned", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoOrderFound)
}

func TestAssignCourierCommandHandler_Handle_NoFreeCouriers(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignCourierCommand()

	readyOrder := newReadyOrder(t)
	pickupRestaurant := newPickupRestaurant(t, 30.30, 59.93)

	orderRepo := new(MockAssignOrderRepository)
	courierRepo := new(MockAssignCourierRepository)
	restaurantRepo := new(MockAssignRestaurantRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		orderRepo.On("GetFirstReadyUnassigned", ctx).Return(readyOrder, nil).Once(),
		restaurantRepo.On("Get", ctx, readyOrder.RestaurantID()).Return(pickupRestaurant, nil).Once(),
		courierRepo.On("GetAvailableNear", ctx, pickupRestaurant.Location(), 5000.0).
			Return([]*courier.Courier{}, nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoFreeCouriersFound)
}

func TestAssignCourierCommandHandler_Handle_GetCouriersError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignCourierCommand()

	readyOrder := newReadyOrder(t)
	pickupRestaurant := newPickupRestaurant(t, 30.30, 59.93)

	orderRepo := new(MockAssignOrderRepository)
	courierRepo := new(MockAssignCourierRepository)
	restaurantRepo := new(MockAssignRestaurantRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		orderRepo.On("GetFirstReadyUnassigned", ctx).Return(readyOrder, nil).Once(),
		restaurantRepo.On("Get", ctx, readyOrder.RestaurantID()).Return(pickupRestaurant, nil).Once(),
		courierRepo.On("GetAvailableNear", ctx, pickupRestaurant.Location(), 5000.0).
			Return(nil, errors.New("database error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func TestAssignCourierCommandHandler_Handle_BestRatedCourierWins(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignCourierCommand()

	readyOrder := newReadyOrder(t)
	pickupRestaurant := newPickupRestaurant(t, 30.30, 59.93)
	now := time.Now().UTC()

	plain := newDeliverableCourier(t, "John Doe", 30.301, 59.931)
	seasoned := newDeliverableCourier(t, "Jane Smith", 30.302, 59.932)
	require.NoError(t, seasoned.AddDelivery(kernel.NewUUID(), true, 5, now))
	require.NoError(t, seasoned.AddRating(kernel.NewUUID(), 5, "great", now))
	testCouriers := []*courier.Courier{plain, seasoned}

	orderRepo := new(MockAssignOrderRepository)
	courierRepo := new(MockAssignCourierRepository)
	restaurantRepo := new(MockAssignRestaurantRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		orderRepo.On("GetFirstReadyUnassigned", ctx).Return(readyOrder, nil).Once(),
		restaurantRepo.On("Get", ctx, readyOrder.RestaurantID()).Return(pickupRestaurant, nil).Once(),
		courierRepo.On("GetAvailableNear", ctx, pickupRestaurant.Location(), 5000.0).
			Return(testCouriers, nil).
			Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		courierRepo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	updateCall := courierRepo.Calls[1]
	updatedCourier := updateCall.Arguments[1].(*courier.Courier)
	assert.True(t, updatedCourier.ID().IsEqual(seasoned.ID()))
}

func TestAssignCourierCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignCourierCommand()

	readyOrder := newReadyOrder(t)
	pickupRestaurant := newPickupRestaurant(t, 30.30, 59.93)
	testCouriers := []*courier.Courier{newDeliverableCourier(t, "John Doe", 30.301, 59.931)}

	orderRepo := new(MockAssignOrderRepository)
	courierRepo := new(MockAssignCourierRepository)
	restaurantRepo := new(MockAssignRestaurantRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		orderRepo.On("GetFirstReadyUnassigned", ctx).Return(readyOrder, nil).Once(),
		restaurantRepo.On("Get", ctx, readyOrder.RestaurantID()).Return(pickupRestaurant, nil).Once(),
		courierRepo.On("GetAvailableNear", ctx, pickupRestaurant.Location(), 5000.0).
			Return(testCouriers, nil).
			Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		courierRepo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
