package restaurant

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrRestaurantIsNotConstructed is returned when a Restaurant was not
	// created via NewRestaurant or RestoreRestaurant.
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

	// ErrReviewNotFound is returned when responding to a review that does
	// not exist.
	ErrReviewNotFound = errors.New("review not found")
)

// Response is the restaurant's reply to a customer review.
type Response struct {
	Text        string
	RespondedAt time.Time
}

// Review is one customer's review of the restaurant. A customer has at most
// one review; resubmitting replaces the rating, comment and images in place.
type Review struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	Rating    float64
	Comment   string
	Images    []string
	Response  *Response
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Restaurant is the aggregate root carrying the pickup location, the fee
// parameters applied at checkout, and the review collection the aggregate
// rating is computed from.
type Restaurant struct {
	id            kernel.UUID
	name          string
	location      kernel.GeoPoint
	deliveryFee   float64
	taxRate       float64
	isOpen        bool
	reviews       []Review
	averageRating float64

	guard guard.ConstructorGuard
}

// NewRestaurant creates an open restaurant at a pickup location.
func NewRestaurant(name string, location kernel.GeoPoint, deliveryFee, taxRate float64) (*Restaurant, error) {
	r := &Restaurant{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setName(name),
		r.setLocation(location),
		r.setFees(deliveryFee, taxRate),
	); err != nil {
		return nil, err
	}

	r.id = kernel.NewUUID()
	r.isOpen = true
	return r, nil
}

// RestoreRestaurant reconstructs a restaurant from persistence.
func RestoreRestaurant(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	deliveryFee, taxRate float64,
	isOpen bool,
	reviews []Review,
) (*Restaurant, error) {
	r := &Restaurant{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		r.setName(name),
		r.setLocation(location),
		r.setFees(deliveryFee, taxRate),
	); err != nil {
		return nil, err
	}

	r.id = id
	r.isOpen = isOpen
	r.reviews = reviews
	r.recomputeRating()

	return r, nil
}

// Validate ensures the restaurant was created via a constructor.
func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// Name returns the restaurant's name.
func (r *Restaurant) Name() string {
	return r.name
}

// Location returns the pickup point couriers collect orders from.
func (r *Restaurant) Location() kernel.GeoPoint {
	return r.location
}

// DeliveryFee returns the flat fee added to every order.
func (r *Restaurant) DeliveryFee() float64 {
	return r.deliveryFee
}

// TaxRate returns the tax fraction applied to the cart subtotal.
func (r *Restaurant) TaxRate() float64 {
	return r.taxRate
}

// IsOpen reports whether the restaurant currently accepts orders.
func (r *Restaurant) IsOpen() bool {
	return r.isOpen
}

// Reviews returns the review collection.
func (r *Restaurant) Reviews() []Review {
	return r.reviews
}

// AverageRating returns the mean review rating rounded to one decimal,
// 0 when there are no reviews.
func (r *Restaurant) AverageRating() float64 {
	return r.averageRating
}

// TotalReviews returns how many customers have reviewed the restaurant.
func (r *Restaurant) TotalReviews() int {
	return len(r.reviews)
}

// SetOpen opens or closes the restaurant for new orders.
func (r *Restaurant) SetOpen(open bool) {
	r.isOpen = open
}

// AddReview upserts a customer's review. A first submission appends a new
// review; a resubmission by the same customer replaces the rating, comment
// and images and stamps UpdatedAt, keeping one review per customer. The
// aggregate rating is recomputed from the full collection either way.
func (r *Restaurant) AddReview(userID kernel.UUID, rating float64, comment string, images []string, now time.Time) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if err := kernel.ValidateRating(rating); err != nil {
		return err
	}

	for i := range r.reviews {
		if r.reviews[i].UserID.IsEqual(userID) {
			r.reviews[i].Rating = rating
			r.reviews[i].Comment = comment
			r.reviews[i].Images = images
			r.reviews[i].UpdatedAt = now
			r.recomputeRating()
			return nil
		}
	}

	r.reviews = append(r.reviews, Review{
		ID:        kernel.NewUUID(),
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	})
	r.recomputeRating()
	return nil
}

// RespondToReview attaches the restaurant's reply to an existing review.
func (r *Restaurant) RespondToReview(reviewID kernel.UUID, text string, now time.Time) error {
	if err := reviewID.Validate(); err != nil {
		return err
	}
	if text == "" {
		return errs.NewValueIsRequiredError("response text")
	}

	for i := range r.reviews {
		if r.reviews[i].ID.IsEqual(reviewID) {
			r.reviews[i].Response = &Response{Text: text, RespondedAt: now}
			return nil
		}
	}
	return ErrReviewNotFound
}

// recomputeRating rebuilds the aggregate rating from the full review list.
func (r *Restaurant) recomputeRating() {
	values := make([]float64, 0, len(r.reviews))
	for _, review := range r.reviews {
		values = append(values, review.Rating)
	}
	r.averageRating = kernel.RoundedAverage(values)
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("restaurant name")
	}
	r.name = name
	return nil
}

func (r *Restaurant) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	r.location = location
	return nil
}

func (r *Restaurant) setFees(deliveryFee, taxRate float64) error {
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee",
			fmt.Errorf("%.2f is negative", deliveryFee))
	}
	if taxRate < 0 || taxRate > 1 {
		return errs.NewValueIsOutOfRangeError("tax rate", taxRate, 0, 1)
	}
	r.deliveryFee = deliveryFee
	r.taxRate = taxRate
	return nil
}
