package commands

import (
	"errors"
	"fmt"

	"kds/internal/core/domain/model/order"
	"kds/internal/pkg/errs"
	"kds/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand moves an order to another status, e.g. when the kitchen
// starts preparing it or the courier picks it up.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(42, "preparando")
//	if err != nil {
//	    // unknown status label
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID order.ID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand validates the id and parses the target status label.
func NewTransitionOrderCommand(orderID order.ID, target string) (TransitionOrderCommand, error) {
	command := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() order.ID {
	return c.orderID
}

func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

func (c *TransitionOrderCommand) setOrderID(orderID order.ID) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target string) error {
	status, err := order.ParseStatus(target)
	if err != nil {
		return err
	}
	c.target = status
	return nil
}
