package commands

import (
	"errors"
	"fmt"

	"kds/internal/core/domain/model/order"
	"kds/internal/pkg/errs"
	"kds/internal/pkg/guard"
)

var (
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
)

// DeleteOrderCommand removes a single order from the board regardless of its status,
// for entries created by mistake.
type DeleteOrderCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID order.ID) (DeleteOrderCommand, error) {
	if orderID <= 0 {
		return DeleteOrderCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"order_id",
			fmt.Errorf("%d is not greater than 0", orderID),
		)
	}
	return DeleteOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() order.ID {
	return c.orderID
}
