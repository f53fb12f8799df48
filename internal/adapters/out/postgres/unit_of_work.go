// Package postgres provides the GORM-based Unit of Work for the kitchen board.
//
// A unit of work wraps one database transaction. The order repository it hands out
// records every change it makes (created, status changed, deleted, swept); after a
// successful Commit those changes are passed to the configured event publisher.
// Rollback drops them, so subscribers never hear about work that did not persist.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if _, err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is meant for a single goroutine; concurrent operations
// should create their own instance from the factory.
package postgres

import (
	"context"

	"kds/internal/adapters/out/postgres/orderrepo"
	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"
	"kds/internal/pkg/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// publisher may be nil, in which case committed changes are not announced.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "unit_of_work")),
	}
}

// Create produces a new UnitOfWork instance with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
		changes:   make([]order.ChangedEvent, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the changes recorded in it.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    *zap.Logger
	changes   []order.ChangedEvent
}

// Begin starts the transaction. Calling Begin twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewStorageError("begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit commits the transaction and then publishes the recorded changes.
// Publishing failures are logged; they never undo a committed transaction.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.changes = uow.changes[:0]
		return errs.NewStorageError("commit transaction", err)
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction and the recorded changes.
// It returns gorm.ErrInvalidTransaction when no transaction is active, which makes
// a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = uow.changes[:0]
	return err
}

// OrderRepository returns a repository bound to the active transaction, or to the
// plain connection when no transaction was started.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow, uow.logger)
}

// Track records a change made inside this unit of work. Repositories call it.
func (uow *GormUnitOfWork) Track(event order.ChangedEvent) {
	if uow.tx == nil {
		// Outside a transaction the change is already durable.
		uow.changes = append(uow.changes, event)
		uow.publish(context.Background())
		return
	}
	uow.changes = append(uow.changes, event)
}

// Changes returns the changes recorded and not yet published.
func (uow *GormUnitOfWork) Changes() []order.ChangedEvent {
	return append([]order.ChangedEvent(nil), uow.changes...)
}

func (uow *GormUnitOfWork) publish(ctx context.Context) {
	if len(uow.changes) == 0 {
		return
	}
	events := uow.changes
	uow.changes = make([]order.ChangedEvent, 0)

	if uow.publisher == nil {
		return
	}
	if err := uow.publisher.Publish(context.WithoutCancel(ctx), events...); err != nil {
		uow.logger.Warn("failed to publish order changes",
			zap.Int("events", len(events)),
			zap.Error(err),
		)
	}
}
