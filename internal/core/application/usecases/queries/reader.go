// Package queries contains read operations for the kitchen board display.
// Queries never modify state and never cache: every call reads the store, so a
// display poller always sees the latest committed data.
package queries

import (
	"context"
	"time"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/domain/services"
	"kds/internal/core/ports"

	"go.uber.org/zap"
)

// OrderReader is the read side of ports.OrderRepository used by the query handlers.
type OrderReader interface {
	Get(ctx context.Context, id order.ID) (*order.Order, error)
	Scan(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error)
	CountByStatus(ctx context.Context, statuses []order.Status) (map[order.Status]int, error)
}

// OrderView is an order decorated with its waiting time and urgency as of the
// moment the query ran.
type OrderView struct {
	ID           order.ID
	Source       order.Source
	ClientName   string
	Description  string
	Status       order.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Elapsed      time.Duration
	ElapsedLabel string
	Urgency      order.Urgency
}

// decorator turns aggregates into views using one policy and clock.
type decorator struct {
	policy services.UrgencyPolicy
	clock  ports.Clock
	logger *zap.Logger
}

func newDecorator(policy services.UrgencyPolicy, clock ports.Clock, logger *zap.Logger) decorator {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return decorator{policy: policy, clock: clock, logger: logger}
}

func (d decorator) view(o *order.Order, now time.Time) OrderView {
	elapsed, err := d.policy.Classify(o.CreatedAt(), now)
	if err != nil {
		d.logger.Warn("cannot compute order waiting time",
			zap.Int64("order_id", int64(o.ID())),
			zap.Time("created_at", o.CreatedAt()),
			zap.Error(err),
		)
	}

	return OrderView{
		ID:           o.ID(),
		Source:       o.Source(),
		ClientName:   o.ClientName(),
		Description:  o.Description(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Elapsed:      elapsed.Duration,
		ElapsedLabel: elapsed.Label(),
		Urgency:      elapsed.Urgency,
	}
}
