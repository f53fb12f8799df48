package order

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType names what happened to the board in a ChangedEvent.
type ChangeType string

const (
	ChangeCreated       ChangeType = "created"
	ChangeStatusChanged ChangeType = "status_changed"
	ChangeDeleted       ChangeType = "deleted"
	ChangeSwept         ChangeType = "swept"
)

// ChangedEvent describes one committed change to the board.
//
// OldStatus is Unknown for created orders and NewStatus is Unknown for deleted ones.
// Swept events carry no order; Removed holds the number of deleted rows instead.
type ChangedEvent struct {
	ID         uuid.UUID
	Type       ChangeType
	OrderID    ID
	Source     Source
	OldStatus  Status
	NewStatus  Status
	Removed    int64
	OccurredAt time.Time
}

func NewCreatedEvent(o *Order) ChangedEvent {
	return ChangedEvent{
		ID:         uuid.New(),
		Type:       ChangeCreated,
		OrderID:    o.ID(),
		Source:     o.Source(),
		NewStatus:  o.Status(),
		OccurredAt: o.CreatedAt(),
	}
}

func NewStatusChangedEvent(o *Order, previous Status) ChangedEvent {
	return ChangedEvent{
		ID:         uuid.New(),
		Type:       ChangeStatusChanged,
		OrderID:    o.ID(),
		Source:     o.Source(),
		OldStatus:  previous,
		NewStatus:  o.Status(),
		OccurredAt: o.UpdatedAt(),
	}
}

func NewDeletedEvent(o *Order, at time.Time) ChangedEvent {
	return ChangedEvent{
		ID:         uuid.New(),
		Type:       ChangeDeleted,
		OrderID:    o.ID(),
		Source:     o.Source(),
		OldStatus:  o.Status(),
		OccurredAt: normalizeTime(at),
	}
}

func NewSweptEvent(removed int64, at time.Time) ChangedEvent {
	return ChangedEvent{
		ID:         uuid.New(),
		Type:       ChangeSwept,
		Removed:    removed,
		OccurredAt: normalizeTime(at),
	}
}
