package eventrepo_test

import (
	"context"
	"testing"
	"time"

	"rotafila/internal/adapters/out/postgres/eventrepo"
	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/delivery"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// EventRepositoryIntegrationTestSuite verifies delivery event persistence
// against a real PostgreSQL instance.
type EventRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *eventrepo.GormEventRepository
}

func (suite *EventRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&eventrepo.EventDTO{}))
}

func (suite *EventRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_events").Error)
	suite.repository = eventrepo.NewGormEventRepository(suite.db)
}

func (suite *EventRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *EventRepositoryIntegrationTestSuite) newEvent(unit kernel.Unit, calledAt time.Time) *delivery.Event {
	event, err := delivery.NewEvent(kernel.NewUUID(), kernel.NewUUID(), unit, courier.BagNormal, calledAt)
	suite.Require().NoError(err)
	return event
}

func (suite *EventRepositoryIntegrationTestSuite) TestAddAndGetOpenByCourier() {
	ctx := context.Background()
	calledAt := time.Now().UTC().Truncate(time.Microsecond)

	event := suite.newEvent(kernel.UnitItaqua, calledAt)
	suite.Require().NoError(suite.repository.Add(ctx, event))

	restored, err := suite.repository.GetOpenByCourier(ctx, event.CourierID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(event.ID()))
	suite.Equal(kernel.UnitItaqua, restored.Unit())
	suite.Equal(courier.BagNormal, restored.BagType())
	suite.True(restored.CalledAt().Equal(calledAt))
	suite.True(restored.IsOpen())
}

func (suite *EventRepositoryIntegrationTestSuite) TestGetOpenByCourierReturnsMostRecent() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	courierID := kernel.NewUUID()

	older, err := delivery.NewEvent(kernel.NewUUID(), courierID, kernel.UnitPoa, courier.BagNormal, now.Add(-time.Hour))
	suite.Require().NoError(err)
	newer, err := delivery.NewEvent(kernel.NewUUID(), courierID, kernel.UnitPoa, courier.BagLarge, now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	restored, err := suite.repository.GetOpenByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(newer.ID()))
}

func (suite *EventRepositoryIntegrationTestSuite) TestGetOpenByCourierNotFound() {
	_, err := suite.repository.GetOpenByCourier(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *EventRepositoryIntegrationTestSuite) TestUpdateClosesEvent() {
	ctx := context.Background()
	calledAt := time.Now().UTC().Truncate(time.Microsecond)

	event := suite.newEvent(kernel.UnitSuzano, calledAt)
	suite.Require().NoError(suite.repository.Add(ctx, event))

	returnedAt := calledAt.Add(25 * time.Minute)
	suite.Require().NoError(event.MarkReturned(returnedAt))
	suite.Require().NoError(suite.repository.Update(ctx, event))

	_, err := suite.repository.GetOpenByCourier(ctx, event.CourierID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	events, err := suite.repository.GetForPeriod(ctx, kernel.UnitSuzano, calledAt.Add(-time.Minute), calledAt.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.False(events[0].IsOpen())
	suite.Require().NotNil(events[0].ReturnedAt())
	suite.True(events[0].ReturnedAt().Equal(returnedAt))
}

func (suite *EventRepositoryIntegrationTestSuite) TestGetAllOpenOrdersOldestFirst() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	newer := suite.newEvent(kernel.UnitItaqua, now)
	older := suite.newEvent(kernel.UnitPoa, now.Add(-2*time.Hour))
	closed := suite.newEvent(kernel.UnitItaqua, now.Add(-time.Hour))
	suite.Require().NoError(closed.MarkReturned(now))

	for _, event := range []*delivery.Event{newer, older, closed} {
		suite.Require().NoError(suite.repository.Add(ctx, event))
	}

	open, err := suite.repository.GetAllOpen(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(open, 2)
	suite.True(open[0].ID().IsEqual(older.ID()))
	suite.True(open[1].ID().IsEqual(newer.ID()))
}

func (suite *EventRepositoryIntegrationTestSuite) TestGetForPeriodBounds() {
	ctx := context.Background()
	from := time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 29, 2, 0, 0, 0, time.UTC)

	inside := suite.newEvent(kernel.UnitItaqua, from.Add(time.Hour))
	atStart := suite.newEvent(kernel.UnitItaqua, from)
	atEnd := suite.newEvent(kernel.UnitItaqua, to)
	otherUnit := suite.newEvent(kernel.UnitPoa, from.Add(time.Hour))

	for _, event := range []*delivery.Event{inside, atStart, atEnd, otherUnit} {
		suite.Require().NoError(suite.repository.Add(ctx, event))
	}

	events, err := suite.repository.GetForPeriod(ctx, kernel.UnitItaqua, from, to)
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	suite.True(events[0].ID().IsEqual(atStart.ID()))
	suite.True(events[1].ID().IsEqual(inside.ID()))
}

func (suite *EventRepositoryIntegrationTestSuite) TestPurgeBefore() {
	ctx := context.Background()
	cutoff := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	stale := suite.newEvent(kernel.UnitItaqua, cutoff.Add(-26*time.Hour))
	suite.Require().NoError(stale.MarkReturned(cutoff.Add(-25 * time.Hour)))
	fresh := suite.newEvent(kernel.UnitItaqua, cutoff.Add(time.Hour))

	suite.Require().NoError(suite.repository.Add(ctx, stale))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	purged, err := suite.repository.PurgeBefore(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Equal(int64(1), purged)

	remaining, err := suite.repository.GetForPeriod(ctx, kernel.UnitItaqua, cutoff, cutoff.Add(24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(remaining, 1)
	suite.True(remaining[0].ID().IsEqual(fresh.ID()))
}

func TestEventRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(EventRepositoryIntegrationTestSuite))
}
