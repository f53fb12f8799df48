package commands

import (
	"context"
	"fmt"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"
	"kds/internal/pkg/errs"
)

// TransitionOrderCommandHandler applies a status change through the state machine.
//
// The write is conditional on the status that was read, so of two operators moving
// the same order at once only the first commit wins. The other one gets an
// InvalidTransitionError computed against the status that actually won, or a
// NotFoundError if the order was deleted meanwhile.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) TransitionOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the order as written.
//
// Errors:
//   - errs.ObjectNotFoundError when the order does not exist
//   - errs.InvalidTransitionError when the target is not reachable from the current status
//   - errs.StorageError when the store fails
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous, err := o.TransitionTo(cmd.Target(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	updated, err := repo.UpdateStatus(ctx, o, previous)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, h.explainLostUpdate(ctx, repo, cmd, previous)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// explainLostUpdate re-reads the row after a conditional update matched nothing.
func (h TransitionOrderCommandHandler) explainLostUpdate(
	ctx context.Context,
	repo ports.OrderRepository,
	cmd TransitionOrderCommand,
	expected order.Status,
) error {
	current, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := current.Status()
	if err = from.ValidateTransition(cmd.Target()); err != nil {
		return err
	}
	return errs.NewInvalidTransitionErrorWithCause(
		from.String(),
		cmd.Target().String(),
		fmt.Errorf("order %s left status %s while being updated", cmd.OrderID(), expected),
	)
}
