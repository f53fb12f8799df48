package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kds/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// ID is the store-assigned identifier of an order. IDs are positive, monotonic and
// never reused. Unsaved orders carry the zero ID.
type ID int64

func (id ID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

// Order is a single customer request tracked from intake to dispatch or cancellation.
//
// Order follows these invariants:
//   - ClientName and Description are non-empty
//   - Status is always one of the five board statuses
//   - CreatedAt never changes and CreatedAt <= UpdatedAt
//   - Status only changes through TransitionTo, which also moves UpdatedAt forward
type Order struct {
	id          ID
	source      Source
	clientName  string
	description string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewOrder creates an unsaved order in the New status with CreatedAt == UpdatedAt == now.
//
// Client name and description are trimmed; all validation failures are joined
// into a single error.
//
// Example:
//
//	o, err := order.NewOrder(order.SourceIFood, "Maria", "1x Açaí 500ml", time.Now())
//	if err != nil {
//	    // errs.IsValidation(err) == true
//	}
func NewOrder(source Source, clientName, description string, now time.Time) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setSource(source),
		o.setClientName(clientName),
		o.setDescription(description),
		o.setCreatedAt(now),
	); err != nil {
		return nil, err
	}
	o.updatedAt = o.createdAt

	return o, nil
}

// RestoreOrder rebuilds a persisted order. Unlike NewOrder it accepts any non-empty
// source, so rows from channels added later still load.
func RestoreOrder(
	id ID,
	source Source,
	clientName, description string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	var sourceErr error
	if strings.TrimSpace(string(source)) == "" {
		sourceErr = errs.NewValueIsRequiredError("source")
	}

	if err := errors.Join(
		idErr,
		sourceErr,
		o.setClientName(clientName),
		o.setDescription(description),
		status.Validate(),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	updatedAt = normalizeTime(updatedAt)
	if updatedAt.Before(o.createdAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"updated_at",
			fmt.Errorf("%s is before created_at %s", updatedAt.Format(time.RFC3339Nano), o.createdAt.Format(time.RFC3339Nano)),
		)
	}

	o.id = id
	o.source = source
	o.status = status
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two persisted orders by ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

func (o *Order) ID() ID {
	return o.id
}

func (o *Order) Source() Source {
	return o.source
}

func (o *Order) ClientName() string {
	return o.clientName
}

func (o *Order) Description() string {
	return o.description
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to target and bumps UpdatedAt.
//
// UpdatedAt becomes now, or one microsecond past the previous UpdatedAt when the
// clock has not advanced, so successive transitions are strictly ordered.
//
// Returns:
//   - the status the order had before the transition
//   - errs.InvalidTransitionError if target is not reachable from the current status
//   - a validation error if target is not a valid status
func (o *Order) TransitionTo(target Status, now time.Time) (Status, error) {
	previous := o.status
	if err := previous.ValidateTransition(target); err != nil {
		return previous, err
	}

	at := normalizeTime(now)
	if !at.After(o.updatedAt) {
		at = o.updatedAt.Add(time.Microsecond)
	}

	o.status = target
	o.updatedAt = at
	return previous, nil
}

// IsTerminal reports whether the order reached a terminal status.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// CompareForDisplay orders a before b by status rank, then CreatedAt, then ID.
// It returns a negative number, zero or a positive number like cmp.Compare.
func CompareForDisplay(a, b *Order) int {
	if ra, rb := a.status.Rank(), b.status.Rank(); ra != rb {
		return ra - rb
	}
	if c := a.createdAt.Compare(b.createdAt); c != 0 {
		return c
	}
	switch {
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	default:
		return 0
	}
}

func (o *Order) setSource(source Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	o.source = source
	return nil
}

func (o *Order) setClientName(clientName string) error {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return errs.NewValueIsRequiredError("client_name")
	}
	o.clientName = clientName
	return nil
}

func (o *Order) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	o.description = description
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	o.createdAt = normalizeTime(createdAt)
	return nil
}

// normalizeTime matches the precision Postgres keeps for timestamptz so that values
// compare equal after a round trip.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
