// Package commands contains business operations that modify the kitchen board.
// Every command follows the same pattern: a constructor-validated value object, a
// handler that opens a unit of work, and an explicit Commit. Changes become visible
// to other readers and to event subscribers only after that Commit.
package commands

import (
	"context"

	"kds/internal/core/ports"
)

type (
	// TxManager is the transaction half of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory exposes the order store bound to the current transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW is what a board command needs: one transaction and the orders in it.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//
	//	// ... uow.OrderRepository() calls
	//
	//	return uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates one OrderUoW per Handle call.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
