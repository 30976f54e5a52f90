package courier

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Stats are the aggregate delivery numbers recomputed from the courier's
// append-only collections. TotalDeliveries always equals the length of the
// delivery history, and AverageRating is the mean of all ratings rounded to
// one decimal.
type Stats struct {
	TotalDeliveries     int
	CompletedDeliveries int
	CancelledDeliveries int
	AverageRating       float64
	TotalRatings        int
}

// Rating is one customer rating of the courier, kept append-only.
type Rating struct {
	OrderID kernel.UUID
	Value   float64
	Comment string
	RatedAt time.Time
}

// Delivery is one entry in the courier's append-only delivery history.
type Delivery struct {
	OrderID    kernel.UUID
	Completed  bool
	Earnings   float64
	RecordedAt time.Time
}

// Courier is the aggregate root for a delivery person: who they are, where
// they are, whether they can take work, and how they have performed. Ratings
// and delivery history only grow; the stats block is recomputed from them on
// every append so the two can never drift apart.
type Courier struct {
	id              kernel.UUID
	name            string
	location        kernel.GeoPoint
	locationUpdated time.Time
	isAvailable     bool
	isOnline        bool
	isActive        bool
	isVerified      bool
	stats           Stats
	ratings         []Rating
	deliveryHistory []Delivery
	earnings        Earnings

	guard guard.ConstructorGuard
}

// NewCourier creates a courier at a starting location. New couriers are
// active but offline, unavailable and unverified until onboarding completes.
func NewCourier(name string, location kernel.GeoPoint, now time.Time) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setName(name),
		c.setLocation(location, now),
	); err != nil {
		return nil, err
	}

	c.id = kernel.NewUUID()
	c.isActive = true
	return c, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	locationUpdated time.Time,
	isAvailable, isOnline, isActive, isVerified bool,
	ratings []Rating,
	deliveryHistory []Delivery,
	earnings Earnings,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		c.setName(name),
		c.setLocation(location, locationUpdated),
	); err != nil {
		return nil, err
	}

	c.id = id
	c.isAvailable = isAvailable
	c.isOnline = isOnline
	c.isActive = isActive
	c.isVerified = isVerified
	c.ratings = ratings
	c.deliveryHistory = deliveryHistory
	c.earnings = earnings
	c.recomputeStats()

	return c, nil
}

// Validate ensures the courier was created via a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// Location returns the courier's last reported position.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// LocationUpdated returns when the position was last reported.
func (c *Courier) LocationUpdated() time.Time {
	return c.locationUpdated
}

// IsAvailable reports whether the courier can take a new order right now.
func (c *Courier) IsAvailable() bool {
	return c.isAvailable
}

// IsOnline reports whether the courier is on shift.
func (c *Courier) IsOnline() bool {
	return c.isOnline
}

// IsActive reports whether the courier's account is enabled.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// IsVerified reports whether onboarding checks have passed.
func (c *Courier) IsVerified() bool {
	return c.isVerified
}

// Stats returns the aggregate delivery numbers.
func (c *Courier) Stats() Stats {
	return c.stats
}

// Ratings returns the append-only rating list.
func (c *Courier) Ratings() []Rating {
	return c.ratings
}

// DeliveryHistory returns the append-only delivery history.
func (c *Courier) DeliveryHistory() []Delivery {
	return c.deliveryHistory
}

// Earnings returns the courier's earnings buckets.
func (c *Courier) Earnings() Earnings {
	return c.earnings
}

// CanDeliver reports whether the courier qualifies for assignment: available,
// on shift, enabled and verified.
func (c *Courier) CanDeliver() bool {
	return c.isAvailable && c.isOnline && c.isActive && c.isVerified
}

// UpdateLocation records a new position report.
func (c *Courier) UpdateLocation(location kernel.GeoPoint, now time.Time) error {
	return c.setLocation(location, now)
}

// SetOnline puts the courier on or off shift. Going off shift also clears
// availability.
func (c *Courier) SetOnline(online bool) {
	c.isOnline = online
	if !online {
		c.isAvailable = false
	}
}

// SetAvailable marks the courier free (or busy) for new orders.
func (c *Courier) SetAvailable(available bool) {
	c.isAvailable = available
}

// SetVerified marks onboarding checks as passed or revoked.
func (c *Courier) SetVerified(verified bool) {
	c.isVerified = verified
}

// Deactivate disables the courier's account and pulls them out of rotation.
func (c *Courier) Deactivate() {
	c.isActive = false
	c.isAvailable = false
	c.isOnline = false
}

// AddDelivery appends a finished delivery to the history, accrues its payout
// and recomputes the stats block.
func (c *Courier) AddDelivery(orderID kernel.UUID, completed bool, payout float64, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := c.earnings.Add(payout); err != nil {
		return err
	}

	c.deliveryHistory = append(c.deliveryHistory, Delivery{
		OrderID:    orderID,
		Completed:  completed,
		Earnings:   payout,
		RecordedAt: now,
	})
	c.recomputeStats()
	return nil
}

// AddRating appends a customer rating and recomputes the average from the
// full rating list.
func (c *Courier) AddRating(orderID kernel.UUID, value float64, comment string, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := kernel.ValidateRating(value); err != nil {
		return err
	}

	c.ratings = append(c.ratings, Rating{
		OrderID: orderID,
		Value:   value,
		Comment: comment,
		RatedAt: now,
	})
	c.recomputeStats()
	return nil
}

// ResetEarnings clears the earnings bucket for the given period.
func (c *Courier) ResetEarnings(period EarningsPeriod) error {
	return c.earnings.Reset(period)
}

// MarkPaidOut moves pending earnings to zero after a payout run.
func (c *Courier) MarkPaidOut() {
	c.earnings.Pending = 0
}

// CompletionRate returns the share of deliveries that completed, 0 when the
// courier has no history yet.
func (c *Courier) CompletionRate() float64 {
	if len(c.deliveryHistory) == 0 {
		return 0
	}
	return float64(c.stats.CompletedDeliveries) / float64(c.stats.TotalDeliveries)
}

// recomputeStats rebuilds the stats block from the append-only collections.
func (c *Courier) recomputeStats() {
	stats := Stats{
		TotalDeliveries: len(c.deliveryHistory),
		TotalRatings:    len(c.ratings),
	}
	for _, d := range c.deliveryHistory {
		if d.Completed {
			stats.CompletedDeliveries++
		} else {
			stats.CancelledDeliveries++
		}
	}

	values := make([]float64, 0, len(c.ratings))
	for _, r := range c.ratings {
		values = append(values, r.Value)
	}
	stats.AverageRating = kernel.RoundedAverage(values)

	c.stats = stats
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.GeoPoint, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	c.locationUpdated = now
	return nil
}
