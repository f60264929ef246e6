package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"rotafila/internal/adapters/out/postgres/courierrepo"
	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CourierRepositoryIntegrationTestSuite verifies courier persistence against
// a real PostgreSQL instance.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) newCourier(name, phoneDigits string, unit kernel.Unit) *courier.Courier {
	phone, err := kernel.NewPhone(phoneDigits)
	suite.Require().NoError(err)

	aggregate, err := courier.NewCourier(kernel.NewUUID(), name, phone, unit, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return aggregate
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()

	original := suite.newCourier("Ana", "11999990001", kernel.UnitItaqua)
	shift, err := courier.ParseShiftWindow("10:00-18:00")
	suite.Require().NoError(err)
	original.SetShift(shift)
	days, err := courier.WorkdaysFromMask("0111110")
	suite.Require().NoError(err)
	original.SetWorkdays(days)

	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsEqual(original))
	suite.Equal("Ana", restored.Name())
	suite.Equal(kernel.UnitItaqua, restored.Unit())
	suite.Equal(courier.StatusAvailable, restored.Status())
	suite.True(restored.IsActive())
	suite.Equal("0111110", restored.Workdays().Mask())
	suite.False(restored.UsesDefaultShift())
	suite.Equal(shift, restored.Shift())
	suite.Nil(restored.DepartedAt())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetByPhone() {
	ctx := context.Background()

	aggregate := suite.newCourier("Bruno", "11999990002", kernel.UnitPoa)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	phone, err := kernel.NewPhone("11999990002")
	suite.Require().NoError(err)

	restored, err := suite.repository.GetByPhone(ctx, phone)
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(aggregate))

	unknown, err := kernel.NewPhone("11900000000")
	suite.Require().NoError(err)
	_, err = suite.repository.GetByPhone(ctx, unknown)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdatePersistsTransition() {
	ctx := context.Background()

	aggregate := suite.newCourier("Carla", "11999990003", kernel.UnitSuzano)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.Call(courier.BagLarge))
	departed := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(aggregate.ConfirmDeparture(departed))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(courier.StatusDelivering, restored.Status())
	suite.Equal(courier.BagLarge, restored.BagType())
	suite.Require().NotNil(restored.DepartedAt())
	suite.True(restored.DepartedAt().Equal(departed))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllInUnitOrdersByPosition() {
	ctx := context.Background()

	second := suite.newCourier("Bruno", "11999990005", kernel.UnitItaqua)
	first := suite.newCourier("Ana", "11999990004", kernel.UnitItaqua)
	other := suite.newCourier("Davi", "11999990006", kernel.UnitPoa)

	suite.Require().NoError(first.SkipTurn(second.QueuePosition().Add(-time.Minute)))
	for _, aggregate := range []*courier.Courier{second, first, other} {
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	couriers, err := suite.repository.GetAllInUnit(ctx, kernel.UnitItaqua)
	suite.Require().NoError(err)
	suite.Require().Len(couriers, 2)
	suite.Equal("Ana", couriers[0].Name())
	suite.Equal("Bruno", couriers[1].Name())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := context.Background()

	waiting := suite.newCourier("Ana", "11999990007", kernel.UnitItaqua)
	out := suite.newCourier("Bruno", "11999990008", kernel.UnitPoa)
	suite.Require().NoError(out.Call(courier.BagNormal))
	suite.Require().NoError(out.ConfirmDeparture(time.Now()))

	suite.Require().NoError(suite.repository.Add(ctx, waiting))
	suite.Require().NoError(suite.repository.Add(ctx, out))

	delivering, err := suite.repository.GetAllInStatus(ctx, courier.StatusDelivering)
	suite.Require().NoError(err)
	suite.Require().Len(delivering, 1)
	suite.True(delivering[0].IsEqual(out))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestRemove() {
	ctx := context.Background()

	aggregate := suite.newCourier("Ana", "11999990009", kernel.UnitItaqua)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Remove(ctx, aggregate.ID()))

	_, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Remove(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
