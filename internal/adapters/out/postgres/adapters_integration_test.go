package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/adapters/out/postgres/vendorrepo"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type AdaptersIntegrationTestSuite struct {
	suite.Suite
	pg *pgtest.Database
}

func TestAdaptersIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(AdaptersIntegrationTestSuite))
}

func (suite *AdaptersIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *AdaptersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *AdaptersIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *AdaptersIntegrationTestSuite) TestOrderNumbers_AreSequential() {
	ctx := suite.T().Context()
	gen := postgres_adapter.NewSequenceOrderNumberGenerator(suite.pg.DB)
	year := time.Now().UTC().Year()

	first, err := gen.Next(ctx)
	suite.Require().NoError(err)
	second, err := gen.Next(ctx)
	suite.Require().NoError(err)

	suite.Equal(fmt.Sprintf("MK-%d-000001", year), first)
	suite.Equal(fmt.Sprintf("MK-%d-000002", year), second)
}

func (suite *AdaptersIntegrationTestSuite) TestVendorDirectory_DisplayNames() {
	ctx := suite.T().Context()
	dir := vendorrepo.NewGormVendorDirectory(suite.pg.DB)
	acme, globex, unknown := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(dir.Upsert(ctx, acme, "Acme"))
	suite.Require().NoError(dir.Upsert(ctx, globex, "Globex"))
	suite.Require().NoError(dir.Upsert(ctx, globex, "Globex Corp"))

	names, err := dir.DisplayNames(ctx, []kernel.UUID{acme, globex, acme, unknown})

	suite.Require().NoError(err)
	suite.Equal(map[kernel.UUID]string{acme: "Acme", globex: "Globex Corp"}, names)
}

func (suite *AdaptersIntegrationTestSuite) TestVendorDirectory_NoIDs() {
	names, err := vendorrepo.NewGormVendorDirectory(suite.pg.DB).DisplayNames(suite.T().Context(), nil)
	suite.Require().NoError(err)
	suite.Empty(names)
}
