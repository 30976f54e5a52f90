package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite provides integration tests for CourierRepository
// using PostgreSQL containers to verify database persistence behavior.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_ValidCourier_Success() {
	ctx := context.Background()
	testCourier := suite.createDeliverableCourier("Alice", 30.3141, 59.9386)

	err := suite.repository.Add(ctx, testCourier)
	suite.Require().NoError(err)

	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", testCourier.ID(), testCourier)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_RoundTrip_PreservesState() {
	ctx := context.Background()
	now := time.Now().UTC()
	testCourier := suite.createDeliverableCourier("Bob", 30.3141, 59.9386)

	orderID := kernel.NewUUID()
	suite.Require().NoError(testCourier.AddDelivery(orderID, true, 2.5, now))
	suite.Require().NoError(testCourier.AddDelivery(kernel.NewUUID(), false, 0, now))
	suite.Require().NoError(testCourier.AddRating(orderID, 4.5, "fast and friendly", now))

	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	restored, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)

	suite.Equal("Bob", restored.Name())
	suite.True(restored.IsVerified())
	suite.True(restored.IsOnline())
	suite.Len(restored.DeliveryHistory(), 2)
	suite.Len(restored.Ratings(), 1)
	suite.InDelta(4.5, restored.Stats().AverageRating, 0.001)
	suite.Equal(2, restored.Stats().TotalDeliveries)
	suite.Equal(1, restored.Stats().CompletedDeliveries)
	suite.Equal(1, restored.Stats().CancelledDeliveries)
	suite.InDelta(2.5, restored.Earnings().Today, 0.001)
	suite.InDelta(2.5, restored.Earnings().Total, 0.001)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAvailableNear_FiltersByDistanceAndReadiness() {
	ctx := context.Background()

	// Pickup point in central Saint Petersburg
	pickup, err := kernel.NewGeoPoint(30.3141, 59.9386)
	suite.Require().NoError(err)

	near := suite.createDeliverableCourier("Near", 30.32, 59.94)
	suite.Require().NoError(suite.repository.Add(ctx, near))

	// Roughly 300 km away
	far := suite.createDeliverableCourier("Far", 30.31, 56.95)
	suite.Require().NoError(suite.repository.Add(ctx, far))

	unverified := suite.createDeliverableCourier("Unverified", 30.31, 59.94)
	unverified.SetVerified(false)
	suite.Require().NoError(suite.repository.Add(ctx, unverified))

	busy := suite.createDeliverableCourier("Busy", 30.31, 59.94)
	busy.SetAvailable(false)
	suite.Require().NoError(suite.repository.Add(ctx, busy))

	found, err := suite.repository.GetAvailableNear(ctx, pickup, 5000.0)
	suite.Require().NoError(err)

	suite.Require().Len(found, 1)
	suite.Equal(near.ID(), found[0].ID())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsAvailabilityChange() {
	ctx := context.Background()
	testCourier := suite.createDeliverableCourier("Carol", 30.3141, 59.9386)

	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	testCourier.SetAvailable(false)
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	restored, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.False(restored.IsAvailable())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestResetEarnings_ClearsOnlyTheBucket() {
	ctx := context.Background()
	now := time.Now().UTC()

	first := suite.createDeliverableCourier("Dave", 30.31, 59.93)
	suite.Require().NoError(first.AddDelivery(kernel.NewUUID(), true, 3.0, now))
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createDeliverableCourier("Erin", 30.32, 59.94)
	suite.Require().NoError(second.AddDelivery(kernel.NewUUID(), true, 4.0, now))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	idle := suite.createDeliverableCourier("Frank", 30.33, 59.95)
	suite.Require().NoError(suite.repository.Add(ctx, idle))

	changed, err := suite.repository.ResetEarnings(ctx, courier.Daily)
	suite.Require().NoError(err)
	suite.EqualValues(2, changed, "Only couriers with daily earnings should be touched")

	restored, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.Zero(restored.Earnings().Today)
	suite.InDelta(3.0, restored.Earnings().ThisWeek, 0.001, "Weekly bucket should survive a daily reset")
	suite.InDelta(3.0, restored.Earnings().Total, 0.001)

	// A repeated run in the same period changes nothing
	changed, err = suite.repository.ResetEarnings(ctx, courier.Daily)
	suite.Require().NoError(err)
	suite.Zero(changed)
}

// createDeliverableCourier builds a courier that passes every dispatch gate.
func (suite *CourierRepositoryIntegrationTestSuite) createDeliverableCourier(name string, lon, lat float64) *courier.Courier {
	location, err := kernel.NewGeoPoint(lon, lat)
	suite.Require().NoError(err)

	testCourier, err := courier.NewCourier(name, location, time.Now().UTC())
	suite.Require().NoError(err)

	testCourier.SetVerified(true)
	testCourier.SetOnline(true)
	testCourier.SetAvailable(true)
	return testCourier
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
