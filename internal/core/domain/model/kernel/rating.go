package kernel

import (
	"math"

	"fooddelivery/internal/pkg/errs"
)

const (
	// RatingMin is the lowest score a customer may submit.
	RatingMin = 1
	// RatingMax is the highest score a customer may submit.
	RatingMax = 5
)

// RoundedAverage computes the mean of the given rating values rounded to one
// decimal place. An empty collection yields 0. Aggregates recompute their
// average from the full rating collection on every change, so the result
// stays correct after in-place edits to an existing rating.
func RoundedAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return math.Round(sum/float64(len(values))*10) / 10
}

// ValidateRating checks that a rating value lies within [RatingMin, RatingMax].
func ValidateRating(value float64) error {
	if value < RatingMin || value > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", value, RatingMin, RatingMax)
	}
	return nil
}
