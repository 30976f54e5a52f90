package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/pricing"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order was not created via
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Pricing is the immutable money breakdown captured at checkout.
// Total == Subtotal + DeliveryFee + Tax - Discount + Tip.
type Pricing struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Discount    float64
	Tip         float64
	Total       float64
}

// NewPricing computes the order total from its parts. Negative inputs or a
// discount driving the total below zero fail.
func NewPricing(subtotal, deliveryFee, tax, discount, tip float64) (Pricing, error) {
	total, err := pricing.OrderTotal(subtotal, deliveryFee, tax, discount, tip)
	if err != nil {
		return Pricing{}, err
	}

	return Pricing{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Tax:         tax,
		Discount:    discount,
		Tip:         tip,
		Total:       total,
	}, nil
}

// TimelineEntry is one record in the order's append-only audit log. Status
// holds the event name, which for transitions equals the new order status and
// for courier assignment is "Assigned".
type TimelineEntry struct {
	Status    string
	Timestamp time.Time
	Note      string
}

// Rating is the customer's verdict on a delivered order.
type Rating struct {
	Value   float64
	Comment string
	RatedAt time.Time
}

// NewOrderNumber derives a unique, roughly monotonic order number from the
// placement time and a per-process sequence, e.g. ORD17467584000001234.
func NewOrderNumber(now time.Time, seq int64) string {
	return fmt.Sprintf("ORD%d%04d", now.UnixMilli(), seq%10000)
}

// Order is the aggregate root for a placed order. It is an immutable snapshot
// of the cart it was created from; after creation only its status, timeline,
// courier assignment and rating may change, each under the state machine's
// rules. The version field supports compare-and-swap updates at the
// persistence boundary.
type Order struct {
	id                    kernel.UUID
	orderNumber           string
	customerID            kernel.UUID
	restaurantID          kernel.UUID
	courierID             *kernel.UUID
	items                 []Item
	deliveryAddress       kernel.GeoPoint
	pricing               Pricing
	payment               Payment
	status                Status
	timeline              []TimelineEntry
	estimatedDeliveryTime time.Time
	actualDeliveryTime    *time.Time
	cancellationReason    string
	rating                *Rating
	loyaltyPointsUsed     int
	loyaltyPointsEarned   int
	version               int

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order from checkout data and writes the first
// timeline entry.
func NewOrder(
	orderNumber string,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	deliveryAddress kernel.GeoPoint,
	orderPricing Pricing,
	payment Payment,
	estimatedDeliveryTime time.Time,
	loyaltyPointsUsed int,
	loyaltyPointsEarned int,
	now time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPayment(payment),
		o.setLoyaltyPoints(loyaltyPointsUsed, loyaltyPointsEarned),
	); err != nil {
		return nil, err
	}

	o.id = kernel.NewUUID()
	o.pricing = orderPricing
	o.status = Pending
	o.estimatedDeliveryTime = estimatedDeliveryTime
	o.timeline = []TimelineEntry{{
		Status:    Pending.String(),
		Timestamp: now,
		Note:      "Order placed",
	}}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	courierID *kernel.UUID,
	items []Item,
	deliveryAddress kernel.GeoPoint,
	orderPricing Pricing,
	payment Payment,
	status Status,
	timeline []TimelineEntry,
	estimatedDeliveryTime time.Time,
	actualDeliveryTime *time.Time,
	cancellationReason string,
	rating *Rating,
	loyaltyPointsUsed int,
	loyaltyPointsEarned int,
	version int,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPayment(payment),
		o.setLoyaltyPoints(loyaltyPointsUsed, loyaltyPointsEarned),
	); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("order version")
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	o.id = id
	o.courierID = courierID
	o.pricing = orderPricing
	o.status = status
	o.timeline = timeline
	o.estimatedDeliveryTime = estimatedDeliveryTime
	o.actualDeliveryTime = actualDeliveryTime
	o.cancellationReason = cancellationReason
	o.rating = rating
	o.version = version

	return o, nil
}

// Validate ensures the order was created via a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the customer-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant fulfilling the order.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CourierID returns the assigned courier, or nil before assignment.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Items returns the snapshot of ordered items.
func (o *Order) Items() []Item {
	return o.items
}

// DeliveryAddress returns where the order is delivered.
func (o *Order) DeliveryAddress() kernel.GeoPoint {
	return o.deliveryAddress
}

// Pricing returns the money breakdown captured at checkout.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Payment returns the payment method and status.
func (o *Order) Payment() Payment {
	return o.payment
}

// Status returns the order's current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Timeline returns the append-only audit log.
func (o *Order) Timeline() []TimelineEntry {
	return o.timeline
}

// EstimatedDeliveryTime returns the promised delivery time.
func (o *Order) EstimatedDeliveryTime() time.Time {
	return o.estimatedDeliveryTime
}

// ActualDeliveryTime returns when the order was delivered, or nil before.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// CancellationReason returns why the order was cancelled, if it was.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// Rating returns the customer's rating, or nil if not yet rated.
func (o *Order) Rating() *Rating {
	return o.rating
}

// LoyaltyPointsUsed returns points redeemed against this order.
func (o *Order) LoyaltyPointsUsed() int {
	return o.loyaltyPointsUsed
}

// LoyaltyPointsEarned returns points granted for this order.
func (o *Order) LoyaltyPointsEarned() int {
	return o.loyaltyPointsEarned
}

// Version returns the optimistic-concurrency version.
func (o *Order) Version() int {
	return o.version
}

// CanCancel reports whether the order may still be called off.
func (o *Order) CanCancel() bool {
	return o.status.CanCancel()
}

// Transition advances the order to the target status and appends a timeline
// entry. An empty note defaults to "Order <status-lowercased>". Reaching
// Delivered also stamps the actual delivery time and completes the payment.
func (o *Order) Transition(target Status, note string, now time.Time) error {
	newStatus, err := o.status.Next(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendTimeline(newStatus.String(), note, now)

	if newStatus == Delivered {
		deliveredAt := now
		o.actualDeliveryTime = &deliveredAt
		o.payment.Status = PaymentCompleted
	}
	return nil
}

// Cancel calls the order off. Allowed only from Pending, Confirmed or
// Preparing. The reason is recorded and used as the timeline note.
func (o *Order) Cancel(reason string, now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancellationReason = reason
	o.appendTimeline(newStatus.String(), reason, now)
	return nil
}

// AssignCourier records the courier on the order and appends an "Assigned"
// timeline entry. The order status itself does not change.
func (o *Order) AssignCourier(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%s is not a valid status to assign a courier", o.status))
	}

	o.courierID = &courierID
	o.timeline = append(o.timeline, TimelineEntry{
		Status:    "Assigned",
		Timestamp: now,
		Note:      "Delivery person assigned",
	})
	return nil
}

// AddRating records the customer's rating. Only delivered orders may be
// rated; resubmission overwrites the previous rating.
func (o *Order) AddRating(value float64, comment string, now time.Time) error {
	if o.status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%s is not a valid status to rate", o.status))
	}
	if err := kernel.ValidateRating(value); err != nil {
		return err
	}

	o.rating = &Rating{Value: value, Comment: comment, RatedAt: now}
	return nil
}

func (o *Order) appendTimeline(status string, note string, now time.Time) {
	if note == "" {
		note = fmt.Sprintf("Order %s", strings.ToLower(status))
	}
	o.timeline = append(o.timeline, TimelineEntry{
		Status:    status,
		Timestamp: now,
		Note:      note,
	})
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.GeoPoint) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}

func (o *Order) setLoyaltyPoints(used, earned int) error {
	if used < 0 || earned < 0 {
		return errs.NewValueIsInvalidError("loyalty points")
	}
	o.loyaltyPointsUsed = used
	o.loyaltyPointsEarned = earned
	return nil
}
