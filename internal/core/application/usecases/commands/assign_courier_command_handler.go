package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

var (
	ErrNoFreeCouriersFound = errors.New("no free couriers found")
	ErrNoOrderFound        = errors.New("no order found")
)

// assignmentRadiusMeters bounds how far from the restaurant a courier may be
// to receive the order.
const assignmentRadiusMeters = 5000.0

// AssignCourierCommandHandler matches kitchen-ready orders with nearby
// couriers. Candidates are prefiltered by the repository around the pickup
// point and ranked by the domain matcher; the best one is reserved and both
// aggregates are written in one transaction.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory)
//	cmd := NewAssignCourierCommand()
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    log.Println("No orders waiting for a courier")
//	case errors.Is(err, ErrNoFreeCouriersFound):
//	    log.Println("All couriers are busy")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory OrderCourierUoWFactory
}

// NewAssignCourierCommandHandler creates a handler for courier assignment operations.
func NewAssignCourierCommandHandler(uowFactory OrderCourierUoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier assignment command.
// Retrieves the oldest kitchen-ready unassigned order, ranks couriers near
// the restaurant, and reserves the best candidate. Returns ErrNoOrderFound
// when nothing waits for a courier and ErrNoFreeCouriersFound when nobody
// suitable is in range.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()
	restaurantRepo := uow.RestaurantRepository()

	readyOrder, err := orderRepo.GetFirstReadyUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderFound
	}
	if err != nil {
		return err
	}

	pickupRestaurant, err := restaurantRepo.Get(ctx, readyOrder.RestaurantID())
	if err != nil {
		return err
	}
	pickup := pickupRestaurant.Location()

	couriers, err := courierRepo.GetAvailableNear(ctx, pickup, assignmentRadiusMeters)
	if err != nil {
		return err
	}

	candidates, err := services.NewCourierMatcher().FindCandidates(pickup, assignmentRadiusMeters, couriers)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return ErrNoFreeCouriersFound
	}

	assigned := candidates[0].Courier
	now := time.Now().UTC()

	if err = readyOrder.AssignCourier(assigned.ID(), now); err != nil {
		return err
	}
	assigned.SetAvailable(false)

	if err = orderRepo.Update(ctx, readyOrder); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, assigned); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
