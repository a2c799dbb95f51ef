package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/deliveryrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type DeliveryQueryHandlersTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *deliveryrepo.GormDeliveryRepository
}

func (suite *DeliveryQueryHandlersTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.repo = deliveryrepo.NewGormDeliveryRepository(db)
}

func (suite *DeliveryQueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)
}

func (suite *DeliveryQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryQueryHandlersTestSuite) TestGetDelivery_ReturnsView() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	d := suite.newDelivery()
	suite.Require().NoError(d.Accept(courierID, true, time.Now()))
	suite.Require().NoError(suite.repo.Add(ctx, d))

	query, err := queries.NewGetDeliveryQuery(d.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetDeliveryQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(d.ID(), view.ID)
	suite.Equal("ACCEPTED", view.Status)
	suite.Equal("DELIVERY", view.Type)
	suite.True(view.AwaitingPayment)
	suite.Require().NotNil(view.CourierID)
	suite.Equal(courierID, *view.CourierID)
	suite.Nil(view.OrganizerID)
	suite.NotNil(view.AcceptedAt)
	suite.Nil(view.CompletedAt)
	suite.Equal("Praça da Sé", view.DestinationAddress)
	suite.InDelta(-46.6333, view.Destination.Longitude(), 1e-9)
}

func (suite *DeliveryQueryHandlersTestSuite) TestGetDelivery_Unknown_ReturnsNotFound() {
	query, err := queries.NewGetDeliveryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetDeliveryQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryQueryHandlersTestSuite) TestGetActiveDeliveries_ExcludesTerminalAndFiltersByCourier() {
	ctx := context.Background()
	courierA := kernel.NewUUID()
	courierB := kernel.NewUUID()

	pending := suite.newDelivery()
	acceptedByA := suite.newDelivery()
	suite.Require().NoError(acceptedByA.Accept(courierA, false, time.Now()))
	acceptedByB := suite.newDelivery()
	suite.Require().NoError(acceptedByB.Accept(courierB, false, time.Now()))
	cancelled := suite.newDelivery()
	_, err := cancelled.Cancel("client gave up", time.Now())
	suite.Require().NoError(err)

	for _, d := range []*delivery.Delivery{pending, acceptedByA, acceptedByB, cancelled} {
		suite.Require().NoError(suite.repo.Add(ctx, d))
	}

	handler := queries.NewGetActiveDeliveriesQueryHandler(suite.db)

	all, err := handler.Handle(ctx, queries.NewGetActiveDeliveriesQuery(nil))
	suite.Require().NoError(err)
	suite.Len(all, 3)
	for _, view := range all {
		suite.NotEqual(cancelled.ID(), view.ID)
	}

	mine, err := handler.Handle(ctx, queries.NewGetActiveDeliveriesQuery(&courierA))
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal(acceptedByA.ID(), mine[0].ID)
}

func (suite *DeliveryQueryHandlersTestSuite) TestGetActiveDeliveries_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := queries.NewGetActiveDeliveriesQueryHandler(suite.db).Handle(ctx, queries.NewGetActiveDeliveriesQuery(nil))

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *DeliveryQueryHandlersTestSuite) newDelivery() *delivery.Delivery {
	route, err := delivery.NewRoute(
		kernel.MustNewLocation(-23.5614, -46.6559), "Av. Paulista, 1000",
		kernel.MustNewLocation(-23.5505, -46.6333), "Praça da Sé",
	)
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), nil, route,
		delivery.TypeDelivery, delivery.VehicleAny, 4000, 1000, time.Now(),
	)
	suite.Require().NoError(err)
	return d
}

func TestDeliveryQueryHandlersTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test requires docker")
	}
	suite.Run(t, new(DeliveryQueryHandlersTestSuite))
}
