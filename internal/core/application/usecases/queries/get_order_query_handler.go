package queries

import (
	"context"

	"kds/internal/core/domain/services"
	"kds/internal/core/ports"

	"go.uber.org/zap"
)

// GetOrderQueryHandler returns one order with its waiting time and urgency.
// A missing order is reported as errs.ObjectNotFoundError by the reader.
type GetOrderQueryHandler struct {
	reader    OrderReader
	decorator decorator
}

func NewGetOrderQueryHandler(
	reader OrderReader,
	policy services.UrgencyPolicy,
	clock ports.Clock,
	logger *zap.Logger,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		reader:    reader,
		decorator: newDecorator(policy, clock, logger),
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	return h.decorator.view(o, h.decorator.clock.Now()), nil
}
