package courierrepo

import (
	"context"
	"errors"
	"math"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// metersPerDegreeLat is the approximate north-south span of one degree of
// latitude, used to convert a radius in meters to a bounding box.
const metersPerDegreeLat = 111320.0

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailableNear retrieves couriers that can take an order within a coarse
// bounding box around the pickup point. The box over-approximates the radius;
// exact great-circle filtering and ranking happen in the domain matcher.
func (r *GormCourierRepository) GetAvailableNear(
	ctx context.Context,
	pickup kernel.GeoPoint,
	maxDistanceMeters float64,
) ([]*courier.Courier, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	latDelta := maxDistanceMeters / metersPerDegreeLat
	lonScale := math.Cos(pickup.Latitude() * math.Pi / 180)
	if lonScale < 0.01 {
		lonScale = 0.01
	}
	lonDelta := maxDistanceMeters / (metersPerDegreeLat * lonScale)

	var dtos []CourierDTO
	err := r.db.WithContext(ctx).
		Where("is_available AND is_online AND is_active AND is_verified").
		Where("latitude BETWEEN ? AND ?", pickup.Latitude()-latDelta, pickup.Latitude()+latDelta).
		Where("longitude BETWEEN ? AND ?", pickup.Longitude()-lonDelta, pickup.Longitude()+lonDelta).
		Find(&dtos).
		Error
	if err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

// ResetEarnings clears the given earnings bucket for every courier in one
// statement. Safe to repeat within the same period.
func (r *GormCourierRepository) ResetEarnings(ctx context.Context, period courier.EarningsPeriod) (int64, error) {
	if err := period.Validate(); err != nil {
		return 0, err
	}

	var bucket string
	switch period {
	case courier.Daily:
		bucket = "today"
	case courier.Weekly:
		bucket = "this_week"
	case courier.Monthly:
		bucket = "this_month"
	default:
		return 0, errs.NewValueIsInvalidError("earnings period")
	}

	result := r.db.WithContext(ctx).Exec(
		`UPDATE couriers SET earnings = jsonb_set(earnings, ?, '0') WHERE earnings ->> ? != '0'`,
		"{"+bucket+"}", bucket,
	)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
