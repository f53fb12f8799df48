package queries

import (
	"errors"

	"kds/internal/core/domain/model/order"
	"kds/internal/pkg/guard"
)

var (
	ErrCountOrdersByStatusQueryIsNotConstructed = errors.New(
		"CountOrdersByStatusQuery must be created via NewCountOrdersByStatusQuery constructor",
	)
)

// CountOrdersByStatusQuery asks for the header counters of the board.
type CountOrdersByStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewCountOrdersByStatusQuery() CountOrdersByStatusQuery {
	return CountOrdersByStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q CountOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersByStatusQueryIsNotConstructed)
}

// StatusCount is the number of orders currently in Status.
type StatusCount struct {
	Status order.Status
	Count  int
}

// CountOrdersByStatusResponse holds one entry per active status, in rank order,
// including statuses with no orders.
type CountOrdersByStatusResponse struct {
	Counts []StatusCount
}

// Of returns the count for status, or 0 when it is not part of the response.
func (r CountOrdersByStatusResponse) Of(status order.Status) int {
	for _, c := range r.Counts {
		if c.Status == status {
			return c.Count
		}
	}
	return 0
}

// Total sums all counts.
func (r CountOrdersByStatusResponse) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c.Count
	}
	return total
}
