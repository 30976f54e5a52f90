package restaurant_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRestaurant(t *testing.T) *restaurant.Restaurant {
	t.Helper()

	location, err := kernel.NewGeoPoint(-73.9857, 40.7484)
	require.NoError(t, err)
	r, err := restaurant.NewRestaurant("Pizzeria", location, 5.00, 0.08)
	require.NoError(t, err)
	return r
}

func TestNewRestaurant(t *testing.T) {
	t.Run("should create open restaurant with no reviews", func(t *testing.T) {
		r := newTestRestaurant(t)

		assert.Equal(t, "Pizzeria", r.Name())
		assert.True(t, r.IsOpen())
		assert.InDelta(t, 5.00, r.DeliveryFee(), 0.001)
		assert.InDelta(t, 0.08, r.TaxRate(), 0.001)
		assert.Zero(t, r.TotalReviews())
		assert.Zero(t, r.AverageRating())
		require.NoError(t, r.Validate())
	})

	t.Run("should reject bad inputs", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(0, 0)
		require.NoError(t, err)

		_, err = restaurant.NewRestaurant("", location, 5, 0.08)
		require.Error(t, err)

		_, err = restaurant.NewRestaurant("Pizzeria", kernel.GeoPoint{}, 5, 0.08)
		require.Error(t, err)

		_, err = restaurant.NewRestaurant("Pizzeria", location, -1, 0.08)
		require.Error(t, err)

		_, err = restaurant.NewRestaurant("Pizzeria", location, 5, 1.5)
		require.Error(t, err)
	})

	t.Run("should reject restaurant not created via constructor", func(t *testing.T) {
		var r restaurant.Restaurant
		require.ErrorIs(t, r.Validate(), restaurant.ErrRestaurantIsNotConstructed)
	})
}

func TestRestaurant_AddReview(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should append reviews and recompute average", func(t *testing.T) {
		r := newTestRestaurant(t)

		require.NoError(t, r.AddReview(kernel.NewUUID(), 5, "great", nil, now))
		require.NoError(t, r.AddReview(kernel.NewUUID(), 4, "good", nil, now))
		require.NoError(t, r.AddReview(kernel.NewUUID(), 3, "meh", nil, now))

		assert.Equal(t, 3, r.TotalReviews())
		assert.InDelta(t, 4.0, r.AverageRating(), 0.001)
	})

	t.Run("should keep one review per customer on resubmission", func(t *testing.T) {
		r := newTestRestaurant(t)
		userID := kernel.NewUUID()
		require.NoError(t, r.AddReview(userID, 2, "cold pizza", nil, now))
		created := r.Reviews()[0].CreatedAt

		later := now.Add(time.Hour)
		err := r.AddReview(userID, 5, "they made it right", []string{"photo.jpg"}, later)

		require.NoError(t, err)
		require.Equal(t, 1, r.TotalReviews())

		review := r.Reviews()[0]
		assert.InDelta(t, 5, review.Rating, 0.001)
		assert.Equal(t, "they made it right", review.Comment)
		assert.Equal(t, []string{"photo.jpg"}, review.Images)
		assert.Equal(t, created, review.CreatedAt)
		assert.Equal(t, later, review.UpdatedAt)
		assert.InDelta(t, 5.0, r.AverageRating(), 0.001)
	})

	t.Run("should reject rating outside 1 to 5", func(t *testing.T) {
		r := newTestRestaurant(t)

		require.Error(t, r.AddReview(kernel.NewUUID(), 0.5, "", nil, now))
		require.Error(t, r.AddReview(kernel.NewUUID(), 5.1, "", nil, now))
		assert.Zero(t, r.TotalReviews())
	})
}

func TestRestaurant_RespondToReview(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should attach response to existing review", func(t *testing.T) {
		r := newTestRestaurant(t)
		require.NoError(t, r.AddReview(kernel.NewUUID(), 3, "slow", nil, now))
		reviewID := r.Reviews()[0].ID

		err := r.RespondToReview(reviewID, "Sorry, busy night", now.Add(time.Hour))

		require.NoError(t, err)
		response := r.Reviews()[0].Response
		require.NotNil(t, response)
		assert.Equal(t, "Sorry, busy night", response.Text)
	})

	t.Run("should fail for unknown review", func(t *testing.T) {
		r := newTestRestaurant(t)

		err := r.RespondToReview(kernel.NewUUID(), "thanks", now)

		require.ErrorIs(t, err, restaurant.ErrReviewNotFound)
	})

	t.Run("should reject empty response text", func(t *testing.T) {
		r := newTestRestaurant(t)
		require.NoError(t, r.AddReview(kernel.NewUUID(), 3, "", nil, now))

		err := r.RespondToReview(r.Reviews()[0].ID, "", now)

		require.Error(t, err)
	})
}

func TestRestoreRestaurant(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should restore and recompute rating from reviews", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(-73.9857, 40.7484)
		require.NoError(t, err)
		id := kernel.NewUUID()
		reviews := []restaurant.Review{
			{ID: kernel.NewUUID(), UserID: kernel.NewUUID(), Rating: 5, CreatedAt: now, UpdatedAt: now},
			{ID: kernel.NewUUID(), UserID: kernel.NewUUID(), Rating: 4, CreatedAt: now, UpdatedAt: now},
			{ID: kernel.NewUUID(), UserID: kernel.NewUUID(), Rating: 4, CreatedAt: now, UpdatedAt: now},
		}

		r, err := restaurant.RestoreRestaurant(id, "Pizzeria", location, 5, 0.08, false, reviews)

		require.NoError(t, err)
		assert.Equal(t, id, r.ID())
		assert.False(t, r.IsOpen())
		assert.Equal(t, 3, r.TotalReviews())
		assert.InDelta(t, 4.3, r.AverageRating(), 0.001)
	})
}
