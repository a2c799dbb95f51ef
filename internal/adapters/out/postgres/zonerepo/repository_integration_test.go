package zonerepo_test

import (
	"context"
	"testing"

	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/adapters/out/postgres/zonerepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/zone"

	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type SpecialZoneRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *zonerepo.GormSpecialZoneRepository
}

func (suite *SpecialZoneRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *SpecialZoneRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)
	suite.repo = zonerepo.NewGormSpecialZoneRepository(suite.db)
}

func (suite *SpecialZoneRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SpecialZoneRepositoryIntegrationTestSuite) TestGetActive_ReturnsOnlyActiveZones() {
	ctx := context.Background()

	active, err := zone.NewSpecialZone(
		kernel.NewUUID(), "Paraisópolis", kernel.MustNewLocation(-23.61, -46.72), 800, zone.TypeDanger, true,
	)
	suite.Require().NoError(err)
	inactive, err := zone.NewSpecialZone(
		kernel.NewUUID(), "Jardins", kernel.MustNewLocation(-23.57, -46.66), 500, zone.TypeHighIncome, false,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, active))
	suite.Require().NoError(suite.repo.Add(ctx, inactive))

	zones, err := suite.repo.GetActive(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(zones, 1)
	suite.Equal(active.ID(), zones[0].ID())
	suite.Equal("Paraisópolis", zones[0].Name())
	suite.Equal(zone.TypeDanger, zones[0].Type())
	suite.InDelta(800.0, zones[0].RadiusMeters(), 1e-9)
	suite.True(zones[0].IsActive())
}

func TestSpecialZoneRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test requires docker")
	}
	suite.Run(t, new(SpecialZoneRepositoryIntegrationTestSuite))
}
