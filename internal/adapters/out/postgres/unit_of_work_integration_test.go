package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/order/ordertest"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingNotifier captures the events delivered after commit.
type recordingNotifier struct {
	mu     sync.Mutex
	events []order.StatusChanged
	err    error
}

func (n *recordingNotifier) NotifyStatusChanged(_ context.Context, event order.StatusChanged) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) Events() []order.StatusChanged {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]order.StatusChanged(nil), n.events...)
}

// stalledNotifier never returns until released, whatever its context says.
type stalledNotifier struct {
	release chan struct{}
}

func (n *stalledNotifier) NotifyStatusChanged(_ context.Context, _ order.StatusChanged) error {
	<-n.release
	return nil
}

// UnitOfWorkIntegrationTestSuite tests transactions and post-commit
// notification against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg       *pgtest.Database
	notifier *recordingNotifier
	logs     *observer.ObservedLogs
	factory  *postgres_adapter.GormUnitOfWorkFactory
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	core, logs := observer.New(zap.DebugLevel)
	suite.logs = logs
	suite.notifier = &recordingNotifier{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.pg.DB, suite.notifier, zap.New(core))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) add(o *order.Order) {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndNotifies() {
	ctx := suite.T().Context()
	o := ordertest.New(suite.T())
	suite.add(o)
	suite.Empty(suite.notifier.Events(), "creation records no status events")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.UpdateFulfillmentStatus(order.FulfillmentConfirmed, nil, "packed",
		ordertest.Staff(suite.T(), "staff1"), ordertest.CreatedAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))

	suite.Empty(suite.notifier.Events(), "nothing is sent before commit")
	suite.Require().NoError(uow.Commit(ctx))

	events := suite.notifier.Events()
	suite.Require().Len(events, 1)
	suite.Equal(o.ID(), events[0].OrderID)
	suite.Equal(order.TrackFulfillment, events[0].Track)
	suite.Equal("pending", events[0].From)
	suite.Equal("confirmed", events[0].To)
	suite.Equal(3, events[0].Seq)
	suite.Equal("packed", events[0].Note)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChangesAndEvents() {
	ctx := suite.T().Context()
	o := ordertest.New(suite.T())
	suite.add(o)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.UpdatePayoutStatus(order.PayoutProcessing, ordertest.Staff(suite.T(), "fin"), "", ordertest.CreatedAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(suite.notifier.Events())

	check := suite.factory.Create()
	stored, err := check.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PayoutPending, stored.PayoutStatus())
	suite.Len(stored.History(), 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_NotifierFailureIsLoggedOnly() {
	ctx := suite.T().Context()
	o := ordertest.New(suite.T())
	suite.add(o)
	suite.notifier.err = errors.New("broker down")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.UpdateFulfillmentStatus(order.FulfillmentCancelled, nil, "", ordertest.Staff(suite.T(), "staff1"), ordertest.CreatedAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))

	suite.Require().NoError(uow.Commit(ctx))

	suite.Len(suite.notifier.Events(), 1)
	suite.Equal(1, suite.logs.FilterMessage("status change notification failed").Len())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_StalledNotifierDoesNotBlock() {
	ctx := suite.T().Context()
	o := ordertest.New(suite.T())
	suite.add(o)

	stalled := &stalledNotifier{release: make(chan struct{})}
	defer close(stalled.release)
	core, logs := observer.New(zap.DebugLevel)
	factory := postgres_adapter.NewGormUnitOfWorkFactory(suite.pg.DB, stalled, zap.New(core)).
		WithNotifyTimeout(100 * time.Millisecond)

	uow := factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.UpdateFulfillmentStatus(order.FulfillmentConfirmed, nil, "", ordertest.Staff(suite.T(), "staff1"), ordertest.CreatedAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))

	start := time.Now()
	suite.Require().NoError(uow.Commit(ctx))

	suite.Less(time.Since(start), 2*time.Second)
	suite.Equal(1, logs.FilterMessage("status change notification timed out").Len())

	stored, err := factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.FulfillmentConfirmed, stored.FulfillmentStatus())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsHarmless() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ordertest.New(suite.T())))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Error(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.pg.DB.Table("orders").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentUpdates_OneWins() {
	ctx := suite.T().Context()
	o := ordertest.New(suite.T())
	suite.add(o)

	first, second := suite.factory.Create(), suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))

	a, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	b, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	staff := ordertest.Staff(suite.T(), "staff1")
	_, err = a.UpdateFulfillmentStatus(order.FulfillmentConfirmed, nil, "", staff, ordertest.CreatedAt.Add(time.Hour))
	suite.Require().NoError(err)
	_, err = b.UpdateFulfillmentStatus(order.FulfillmentCancelled, nil, "", staff, ordertest.CreatedAt.Add(time.Hour))
	suite.Require().NoError(err)

	suite.Require().NoError(first.OrderRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	err = second.OrderRepository().Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrWriteConflict)
	suite.Require().NoError(second.Rollback(ctx))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.FulfillmentConfirmed, stored.FulfillmentStatus())
}
