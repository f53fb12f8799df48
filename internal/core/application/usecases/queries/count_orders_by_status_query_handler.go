package queries

import (
	"context"

	"kds/internal/core/domain/model/order"
)

// CountOrdersByStatusQueryHandler counts the orders still on the board. Terminal
// statuses are never counted.
type CountOrdersByStatusQueryHandler struct {
	reader OrderReader
}

func NewCountOrdersByStatusQueryHandler(reader OrderReader) CountOrdersByStatusQueryHandler {
	return CountOrdersByStatusQueryHandler{reader: reader}
}

func (h CountOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountOrdersByStatusQuery,
) (CountOrdersByStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return CountOrdersByStatusResponse{}, err
	}

	active := order.ActiveStatuses()
	counts, err := h.reader.CountByStatus(ctx, active)
	if err != nil {
		return CountOrdersByStatusResponse{}, err
	}

	response := CountOrdersByStatusResponse{Counts: make([]StatusCount, 0, len(active))}
	for _, status := range active {
		response.Counts = append(response.Counts, StatusCount{Status: status, Count: counts[status]})
	}
	return response, nil
}
