// Package postgres provides the GORM-based Unit of Work and the PostgreSQL
// adapters around it.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it run inside that transaction and report every aggregate they write;
// after a successful Commit the unit of work pulls the aggregates' domain
// events and hands them to the OrderEventNotifier. Delivery is
// fire-and-forget: a failing notifier is logged and never undoes the
// commit. Rollback discards the tracked aggregates and their events.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	// ... mutate o
//	if err = uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is single-goroutine; concurrent operations use
// separate instances.
package postgres

import (
	"context"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/pgerrs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	PullEvents() []order.StatusChanged
}

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// DefaultNotifyTimeout bounds how long Commit waits for the notifier.
const DefaultNotifyTimeout = 5 * time.Second

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db            *gorm.DB
	notifier      ports.OrderEventNotifier
	notifyTimeout time.Duration
	log           *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory. notifier may be nil, in which
// case events are dropped after commit.
func NewGormUnitOfWorkFactory(db *gorm.DB, notifier ports.OrderEventNotifier, log *zap.Logger) *GormUnitOfWorkFactory {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{
		db:            db,
		notifier:      notifier,
		notifyTimeout: DefaultNotifyTimeout,
		log:           log.With(zap.String("component", "uow")),
	}
}

// WithNotifyTimeout sets the delivery deadline for the events of one commit.
// Non-positive values keep the current one.
func (f *GormUnitOfWorkFactory) WithNotifyTimeout(d time.Duration) *GormUnitOfWorkFactory {
	if d > 0 {
		f.notifyTimeout = d
	}
	return f
}

// Create produces a new UnitOfWork instance with its own transaction state
// and aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		notifier:          f.notifier,
		notifyTimeout:     f.notifyTimeout,
		log:               f.log,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and delivers the
// events of the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	notifier          ports.OrderEventNotifier
	notifyTimeout     time.Duration
	log               *zap.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerrs.Translate(tx.Error, "transaction", "begin")
	}
	uow.tx = tx
	return nil
}

// Commit makes the transaction's changes permanent, then notifies. Commit
// failures such as serialization conflicts surface as errs.ErrWriteConflict.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return pgerrs.Translate(err, "transaction", "commit")
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction and the tracked aggregates. It returns
// gorm.ErrInvalidTransaction when there is no open transaction, which
// happens on the deferred call after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns a repository bound to the open transaction, or to
// the plain connection when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Called by repositories.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// publish hands the committed events to the notifier. Delivery gets its own
// deadline, detached from the request, and Commit waits for it at most that
// long; a delivery still running then is abandoned and its context ends.
func (uow *GormUnitOfWork) publish(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []order.StatusChanged
	for _, t := range tracked {
		if source, ok := t.Aggregate.(eventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}
	if uow.notifier == nil || len(events) == 0 {
		return
	}

	deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uow.notifyTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, event := range events {
			if err := uow.notifier.NotifyStatusChanged(deliverCtx, event); err != nil {
				uow.log.Warn("status change notification failed",
					zap.String("orderId", event.OrderID.String()),
					zap.String("track", event.Track.String()),
					zap.String("status", event.To),
					zap.Int("seq", event.Seq),
					zap.Error(err),
				)
			}
		}
	}()

	select {
	case <-done:
	case <-deliverCtx.Done():
		uow.log.Warn("status change notification timed out",
			zap.Int("events", len(events)),
			zap.Duration("timeout", uow.notifyTimeout),
		)
	}
}
