package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/courierrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// CourierRepositoryIntegrationTestSuite verifies courier persistence against
// a real PostgreSQL.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)
	suite.repo = courierrepo.NewGormCourierRepository(suite.db)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_WithEmploymentLinks() {
	ctx := context.Background()
	organizationID := kernel.NewUUID()
	c := suite.newCourier("Ana", kernel.MustNewLocation(-23.56, -46.65), courier.Available)
	suite.Require().NoError(c.LinkToOrganization(organizationID, time.Now()))
	c.ChangePushToken("ExponentPushToken[ana]")

	suite.Require().NoError(suite.repo.Add(ctx, c))

	loaded, err := suite.repo.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal("Ana", loaded.Name())
	suite.Equal(courier.Available, loaded.Availability())
	suite.Equal("ExponentPushToken[ana]", loaded.PushToken())
	suite.True(loaded.IsActiveEmployeeOf(organizationID))
	suite.Len(loaded.Employments(), 1)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusCountersAndLinks() {
	ctx := context.Background()
	orgA := kernel.NewUUID()
	orgB := kernel.NewUUID()
	c := suite.newCourier("Bruno", kernel.MustNewLocation(-23.56, -46.65), courier.Offline)
	suite.Require().NoError(c.LinkToOrganization(orgA, time.Now()))
	suite.Require().NoError(suite.repo.Add(ctx, c))

	suite.Require().NoError(c.ChangeAvailability(courier.Available))
	suite.Require().NoError(c.MoveTo(kernel.MustNewLocation(-23.50, -46.60)))
	suite.Require().NoError(c.UnlinkFromOrganization(orgA))
	suite.Require().NoError(c.LinkToOrganization(orgB, time.Now()))
	c.RecordAcceptedDelivery()
	suite.Require().NoError(suite.repo.Update(ctx, c))

	loaded, err := suite.repo.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(courier.Available, loaded.Availability())
	suite.InDelta(-23.50, loaded.Location().Latitude(), 1e-9)
	suite.Equal(1, loaded.DeliveriesCount())
	suite.False(loaded.IsActiveEmployeeOf(orgA))
	suite.True(loaded.IsActiveEmployeeOf(orgB))
	suite.Len(loaded.Employments(), 2)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFound() {
	c := suite.newCourier("Ghost", kernel.MustNewLocation(0, 0), courier.Available)

	err := suite.repo.Update(context.Background(), c)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_StaleCopy_ReturnsStaleObject() {
	ctx := context.Background()
	c := suite.newCourier("Carla", kernel.MustNewLocation(-23.56, -46.65), courier.Available)
	suite.Require().NoError(suite.repo.Add(ctx, c))

	first, err := suite.repo.Get(ctx, c.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, c.ID())
	suite.Require().NoError(err)

	first.RecordAcceptedDelivery()
	suite.Require().NoError(suite.repo.Update(ctx, first))

	second.RecordCancellation()
	err = suite.repo.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrStaleObject)

	loaded, err := suite.repo.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), loaded.Version())
	suite.Equal(1, loaded.DeliveriesCount())
	suite.Equal(0, loaded.CancellationsCount())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAvailableWithin_FiltersByBoxAndAvailability() {
	ctx := context.Background()
	center := kernel.MustNewLocation(-23.5505, -46.6333)

	near := suite.newCourier("Near", kernel.MustNewLocation(-23.5600, -46.6400), courier.Available)
	offline := suite.newCourier("Offline", kernel.MustNewLocation(-23.5510, -46.6340), courier.Offline)
	far := suite.newCourier("Far", kernel.MustNewLocation(-22.9068, -43.1729), courier.Available)
	for _, c := range []*courier.Courier{near, offline, far} {
		suite.Require().NoError(suite.repo.Add(ctx, c))
	}

	found, err := suite.repo.GetAvailableWithin(ctx, center, 5)

	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(near.ID(), found[0].ID())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetActiveEmployeeIDs_ReturnsDistinctActiveEmployees() {
	ctx := context.Background()
	orgA := kernel.NewUUID()
	orgB := kernel.NewUUID()

	both := suite.newCourier("Both", kernel.MustNewLocation(0, 0), courier.Available)
	suite.Require().NoError(both.LinkToOrganization(orgA, time.Now()))
	suite.Require().NoError(both.LinkToOrganization(orgB, time.Now()))

	former := suite.newCourier("Former", kernel.MustNewLocation(0, 0), courier.Available)
	suite.Require().NoError(former.LinkToOrganization(orgA, time.Now()))
	suite.Require().NoError(former.UnlinkFromOrganization(orgA))

	outsider := suite.newCourier("Outsider", kernel.MustNewLocation(0, 0), courier.Available)

	for _, c := range []*courier.Courier{both, former, outsider} {
		suite.Require().NoError(suite.repo.Add(ctx, c))
	}

	ids, err := suite.repo.GetActiveEmployeeIDs(ctx, []kernel.UUID{orgA, orgB})
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{both.ID()}, ids)

	ids, err = suite.repo.GetActiveEmployeeIDs(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(ids)
}

func (suite *CourierRepositoryIntegrationTestSuite) newCourier(
	name string, location kernel.Location, availability courier.Availability,
) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), name, location, availability)
	suite.Require().NoError(err)
	return c
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test requires docker")
	}
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
