package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/deliveryrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *deliveryrepo.GormDeliveryRepository
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)
	suite.repo = deliveryrepo.NewGormDeliveryRepository(suite.db)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAllFields() {
	ctx := context.Background()
	organizerID := kernel.NewUUID()
	d := suite.newDelivery(&organizerID)

	suite.Require().NoError(suite.repo.Add(ctx, d))

	loaded, err := suite.repo.Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.True(d.IsEqual(loaded))
	suite.Equal(d.ClientID(), loaded.ClientID())
	suite.Require().NotNil(loaded.OrganizerID())
	suite.Equal(organizerID, *loaded.OrganizerID())
	suite.Nil(loaded.CourierID())
	suite.Equal(delivery.Pending, loaded.Status())
	suite.Equal(delivery.TypeDelivery, loaded.Type())
	suite.Equal(delivery.VehicleMotorcycle, loaded.VehicleType())
	suite.Equal(int64(5000), loaded.TotalAmount())
	suite.Equal(int64(1200), loaded.ShippingFee())
	suite.InDelta(d.DistanceKm(), loaded.DistanceKm(), 1e-9)
	suite.Equal("Av. Paulista, 1000", loaded.Route().OriginAddress())
	suite.InDelta(-23.5505, loaded.Route().Destination().Latitude(), 1e-9)
	suite.Equal(int64(0), loaded.Version())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_BumpsVersionAndPersistsTransition() {
	ctx := context.Background()
	d := suite.newDelivery(nil)
	suite.Require().NoError(suite.repo.Add(ctx, d))

	courierID := kernel.NewUUID()
	suite.Require().NoError(d.Accept(courierID, true, time.Now()))
	suite.Require().NoError(suite.repo.Update(ctx, d))

	loaded, err := suite.repo.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Accepted, loaded.Status())
	suite.True(loaded.IsAwaitingPayment())
	suite.Require().NotNil(loaded.CourierID())
	suite.Equal(courierID, *loaded.CourierID())
	suite.NotNil(loaded.AcceptedAt())
	suite.Equal(int64(1), loaded.Version())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsStaleObject() {
	ctx := context.Background()
	d := suite.newDelivery(nil)
	suite.Require().NoError(suite.repo.Add(ctx, d))

	first, err := suite.repo.Get(ctx, d.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Accept(kernel.NewUUID(), false, time.Now()))
	suite.Require().NoError(suite.repo.Update(ctx, first))

	_, err = second.Cancel("client gave up", time.Now())
	suite.Require().NoError(err)
	err = suite.repo.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrStaleObject)
	loaded, getErr := suite.repo.Get(ctx, d.ID())
	suite.Require().NoError(getErr)
	suite.Equal(delivery.Accepted, loaded.Status())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFound() {
	d := suite.newDelivery(nil)

	err := suite.repo.Update(context.Background(), d)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetByIDs_SkipsUnknownIDs() {
	ctx := context.Background()
	a := suite.newDelivery(nil)
	b := suite.newDelivery(nil)
	suite.Require().NoError(suite.repo.Add(ctx, a))
	suite.Require().NoError(suite.repo.Add(ctx, b))

	loaded, err := suite.repo.GetByIDs(ctx, []kernel.UUID{b.ID(), kernel.NewUUID(), a.ID()})

	suite.Require().NoError(err)
	suite.Len(loaded, 2)

	empty, err := suite.repo.GetByIDs(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) newDelivery(organizerID *kernel.UUID) *delivery.Delivery {
	route, err := delivery.NewRoute(
		kernel.MustNewLocation(-23.5614, -46.6559), "Av. Paulista, 1000",
		kernel.MustNewLocation(-23.5505, -46.6333), "Praça da Sé",
	)
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), organizerID, route,
		delivery.TypeDelivery, delivery.VehicleMotorcycle, 5000, 1200, time.Now(),
	)
	suite.Require().NoError(err)
	return d
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test requires docker")
	}
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
