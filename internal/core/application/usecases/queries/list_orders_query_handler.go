package queries

import (
	"context"

	"kds/internal/core/domain/services"
	"kds/internal/core/ports"

	"go.uber.org/zap"
)

// ListOrdersQueryHandler returns board orders in display order (status rank, then
// oldest first) with waiting time and urgency computed against a single "now".
type ListOrdersQueryHandler struct {
	reader    OrderReader
	decorator decorator
}

func NewListOrdersQueryHandler(
	reader OrderReader,
	policy services.UrgencyPolicy,
	clock ports.Clock,
	logger *zap.Logger,
) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		reader:    reader,
		decorator: newDecorator(policy, clock, logger),
	}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := ports.ActiveOrders
	if query.IncludeFinished() {
		filter = ports.AllOrders
	}

	orders, err := h.reader.Scan(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := h.decorator.clock.Now()
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, h.decorator.view(o, now))
	}
	return views, nil
}
