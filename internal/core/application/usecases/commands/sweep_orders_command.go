package commands

import (
	"errors"
	"math"
	"time"

	"kds/internal/pkg/errs"
	"kds/internal/pkg/guard"
)

// maxRetentionHours keeps now - retention representable as a time.Duration.
const maxRetentionHours = math.MaxInt64 / int64(time.Hour)

var (
	ErrSweepOrdersCommandIsNotConstructed = errors.New(
		"SweepOrdersCommand must be created via NewSweepOrdersCommand constructor",
	)
)

// SweepOrdersCommand removes finished orders that have not changed for the
// retention period. A retention of 0 removes every finished order.
//
// Example:
//
//	cmd, _ := NewSweepOrdersCommand(24)
//	removed, err := handler.Handle(ctx, cmd)
type SweepOrdersCommand struct {
	retentionHours int

	guard guard.ConstructorGuard
}

// NewSweepOrdersCommand rejects negative retention.
func NewSweepOrdersCommand(retentionHours int) (SweepOrdersCommand, error) {
	if retentionHours < 0 || int64(retentionHours) > maxRetentionHours {
		return SweepOrdersCommand{}, errs.NewValueIsOutOfRangeError("retention_hours", retentionHours, 0, maxRetentionHours)
	}

	return SweepOrdersCommand{
		retentionHours: retentionHours,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepOrdersCommandIsNotConstructed)
}

func (c SweepOrdersCommand) RetentionHours() int {
	return c.retentionHours
}

// Retention returns the retention period as a duration.
func (c SweepOrdersCommand) Retention() time.Duration {
	return time.Duration(c.retentionHours) * time.Hour
}
