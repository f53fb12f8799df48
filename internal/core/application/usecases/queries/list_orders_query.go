package queries

import (
	"errors"

	"kds/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery asks for the board contents.
//
// Example:
//
//	query := NewListOrdersQuery(false)
//	views, err := handler.Handle(ctx, query)
//	for _, v := range views {
//	    fmt.Printf("#%d %s %s (%s)\n", v.ID, v.ClientName, v.ElapsedLabel, v.Urgency)
//	}
type ListOrdersQuery struct {
	includeFinished bool

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates the query. With includeFinished false, dispatched and
// cancelled orders are left out.
func NewListOrdersQuery(includeFinished bool) ListOrdersQuery {
	return ListOrdersQuery{includeFinished: includeFinished, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) IncludeFinished() bool {
	return q.includeFinished
}
