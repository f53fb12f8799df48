// Package ports defines the contracts between the kitchen board core and its
// infrastructure: the order store, the unit of work, the event sink and the clock.
package ports

import (
	"context"
	"time"

	"kds/internal/core/domain/model/order"
)

// OrderFilter selects which orders Scan returns.
type OrderFilter int

const (
	// ActiveOrders excludes terminal statuses.
	ActiveOrders OrderFilter = iota
	// AllOrders includes dispatched and cancelled orders.
	AllOrders
)

// OrderRepository defines the persistence contract for order aggregates.
// Every method goes to the backing store; nothing is cached. Driver failures are
// reported as errs.StorageError.
type OrderRepository interface {
	// Add persists a new order and returns the id assigned by the store.
	// Only unsaved orders in the New status are accepted.
	Add(ctx context.Context, aggregate *order.Order) (order.ID, error)

	// Get retrieves an order by id. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// Scan returns the orders matching filter sorted by status rank, then created_at,
	// then id.
	Scan(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// UpdateStatus writes the status and updated_at of aggregate, but only if the
	// stored row still has the expected status. It reports whether a row was updated.
	//
	// Example:
	//   previous, err := o.TransitionTo(order.Ready, now)
	//   ok, err := repo.UpdateStatus(ctx, o, previous)
	//   if !ok {
	//       // somebody else moved the order first, or it was deleted
	//   }
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)

	// CountByStatus counts orders grouped by status, restricted to statuses.
	// Statuses without orders are absent from the result.
	CountByStatus(ctx context.Context, statuses []order.Status) (map[order.Status]int, error)

	// DeleteOlderThan removes orders whose status is in statuses and whose
	// updated_at is at or before threshold. It returns the number of removed rows.
	// sweptAt stamps the reported change.
	DeleteOlderThan(
		ctx context.Context,
		threshold time.Time,
		statuses []order.Status,
		sweptAt time.Time,
	) (int64, error)

	// Delete removes a single order and reports whether it existed.
	// deletedAt stamps the reported change.
	Delete(ctx context.Context, id order.ID, deletedAt time.Time) (bool, error)
}
