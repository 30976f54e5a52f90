package services

import (
	"sort"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CourierMatcher is a domain service that proposes a ranked list of couriers
// for an order pickup. It only filters and ranks; the caller performs the
// actual assignment as a separate explicit step.
//
// Ranking rules:
//   - a candidate must be available, online, active and verified
//   - a candidate must be within the maximum distance of the pickup point
//   - candidates are sorted by average rating, best first
//   - ties are broken by total deliveries, more experienced first
//
// An empty candidate list is a normal outcome, not an error.
type CourierMatcher struct{}

// NewCourierMatcher creates a new CourierMatcher instance.
func NewCourierMatcher() CourierMatcher {
	return CourierMatcher{}
}

// Candidate pairs a qualifying courier with its distance to the pickup point.
type Candidate struct {
	Courier  *courier.Courier
	Distance float64
}

// FindCandidates filters the given couriers down to those who qualify for the
// pickup and returns them ranked.
func (m CourierMatcher) FindCandidates(
	pickup kernel.GeoPoint,
	maxDistanceMeters float64,
	couriers []*courier.Courier,
) ([]Candidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.CanDeliver() {
			continue
		}

		distance, err := c.Location().DistanceTo(pickup)
		if err != nil {
			return nil, err
		}
		if distance > maxDistanceMeters {
			continue
		}

		candidates = append(candidates, Candidate{Courier: c, Distance: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Courier.Stats(), candidates[j].Courier.Stats()
		if a.AverageRating != b.AverageRating {
			return a.AverageRating > b.AverageRating
		}
		return a.TotalDeliveries > b.TotalDeliveries
	})

	return candidates, nil
}
