package queries

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetTopRatedCouriersQueryIsNotConstructed = errors.New(
	"GetTopRatedCouriersQuery must be created via NewGetTopRatedCouriersQuery constructor",
)

// GetTopRatedCouriersQuery retrieves the best performing couriers ranked by
// average rating, with delivery count breaking ties.
type GetTopRatedCouriersQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetTopRatedCouriersQuery creates a leaderboard query limited to the
// given number of couriers.
func NewGetTopRatedCouriersQuery(limit int) (GetTopRatedCouriersQuery, error) {
	q := GetTopRatedCouriersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setLimit(limit); err != nil {
		return GetTopRatedCouriersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTopRatedCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetTopRatedCouriersQueryIsNotConstructed)
}

// Limit returns how many couriers to return.
func (q GetTopRatedCouriersQuery) Limit() int {
	return q.limit
}

func (q *GetTopRatedCouriersQuery) setLimit(limit int) error {
	if limit < 1 {
		return errs.NewValueIsInvalidErrorWithCause("limit",
			fmt.Errorf("%d is less than 1", limit))
	}
	q.limit = limit
	return nil
}

// GetTopRatedCouriersQueryResponse is one leaderboard row.
type GetTopRatedCouriersQueryResponse struct {
	ID              kernel.UUID
	Name            string
	AverageRating   float64
	TotalDeliveries int
}
