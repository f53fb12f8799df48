package commands

import (
	"context"

	"kds/internal/core/ports"
	"kds/internal/pkg/errs"
)

// DeleteOrderCommandHandler removes one order. Deleting an order that does not exist
// is reported as errs.ObjectNotFoundError rather than silently ignored.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) DeleteOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return DeleteOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OrderRepository().Delete(ctx, cmd.OrderID(), h.clock.Now())
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NewObjectNotFoundError("order", cmd.OrderID())
	}

	return uow.Commit(ctx)
}
