package commands

import (
	"context"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"
)

// SweepOrdersCommandHandler deletes terminal orders whose updated_at is at or before
// now - retention. Orders that are still on the board are never touched.
type SweepOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewSweepOrdersCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) SweepOrdersCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return SweepOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the number of removed orders.
func (h SweepOrdersCommandHandler) Handle(ctx context.Context, cmd SweepOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()
	threshold := now.Add(-cmd.Retention())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.OrderRepository().DeleteOlderThan(ctx, threshold, order.TerminalStatuses(), now)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
