package commands

import (
	"context"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"
)

// CreateOrderCommandHandler puts a new order on the board in the "novo" status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, ports.SystemClock)
//	cmd, _ := NewCreateOrderCommand("whatsapp", "João", "2x Coxinha")
//
//	id, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CreateOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle stores the order with created_at = updated_at = now and returns its id.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	o, err := order.NewOrder(cmd.Source(), cmd.ClientName(), cmd.Description(), h.clock.Now())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	id, err := uow.OrderRepository().Add(ctx, o)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return id, nil
}
