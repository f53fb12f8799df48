package ports

import (
	"context"

	"kds/internal/core/domain/model/order"
)

// OrderEventPublisher delivers committed board changes to interested parties.
// Implementations must be safe for concurrent use.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...order.ChangedEvent) error
}
