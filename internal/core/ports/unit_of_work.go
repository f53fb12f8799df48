package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command. Instances are not
// shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one board transaction. Changes made through its OrderRepository
// reach the OrderEventPublisher only once Commit succeeds.
type UnitOfWork interface {
	// Begin opens the transaction. A second Begin keeps the first one.
	Begin(ctx context.Context) error

	// Commit makes the changes visible to readers, then announces them.
	Commit(ctx context.Context) error

	// Rollback drops the transaction and its recorded changes. It is safe to call
	// after Commit, so handlers can defer it unconditionally.
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the open transaction, or to the pool before Begin.
	OrderRepository() OrderRepository
}
