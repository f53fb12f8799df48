// Package events combines several order event sinks into one publisher.
package events

import (
	"context"
	"errors"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"
)

// FanOut delivers every batch to all sinks, even when one of them fails.
type FanOut struct {
	sinks []ports.OrderEventPublisher
}

var _ ports.OrderEventPublisher = (*FanOut)(nil)

// NewFanOut skips nil sinks.
func NewFanOut(sinks ...ports.OrderEventPublisher) *FanOut {
	f := &FanOut{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Publish returns the joined errors of all failing sinks.
func (f *FanOut) Publish(ctx context.Context, events ...order.ChangedEvent) error {
	if len(events) == 0 {
		return nil
	}
	var errList []error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, events...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// Noop drops all events.
type Noop struct{}

func (Noop) Publish(context.Context, ...order.ChangedEvent) error { return nil }
