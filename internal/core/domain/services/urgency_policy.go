package services

import (
	"errors"
	"fmt"
	"time"

	"kds/internal/core/domain/model/order"
	"kds/internal/pkg/errs"
)

const (
	DefaultWarningAfter = 15 * time.Minute
	DefaultUrgentAfter  = 30 * time.Minute
)

var (
	// ErrCreatedAtIsZero is returned by Classify for an order without a creation time.
	ErrCreatedAtIsZero = errors.New("created_at is zero")

	// ErrCreatedAtInFuture is returned by Classify when the creation time is ahead of now,
	// usually because of clock skew between writers.
	ErrCreatedAtInFuture = errors.New("created_at is in the future")
)

// Elapsed is the waiting time of an order together with its urgency tier.
type Elapsed struct {
	Duration time.Duration
	Urgency  order.Urgency
}

// Label renders Duration with FormatElapsed.
func (e Elapsed) Label() string {
	return FormatElapsed(e.Duration)
}

// UrgencyPolicy maps waiting time to urgency tiers.
//
// Business rules:
//   - waiting >= urgentAfter is Urgent
//   - waiting >= warningAfter is Warning
//   - anything shorter is Normal
//
// Example usage:
//
//	policy, _ := services.NewUrgencyPolicy(15*time.Minute, 30*time.Minute)
//	elapsed, err := policy.Classify(o.CreatedAt(), time.Now())
//	if err != nil {
//	    // elapsed is still usable: 0 and Normal
//	}
//	fmt.Println(elapsed.Label(), elapsed.Urgency)
type UrgencyPolicy struct {
	warningAfter time.Duration
	urgentAfter  time.Duration
}

// NewUrgencyPolicy validates 0 < warningAfter < urgentAfter.
func NewUrgencyPolicy(warningAfter, urgentAfter time.Duration) (UrgencyPolicy, error) {
	if warningAfter <= 0 {
		return UrgencyPolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"warning_after",
			fmt.Errorf("%s is not greater than 0", warningAfter),
		)
	}
	if urgentAfter <= warningAfter {
		return UrgencyPolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"urgent_after",
			fmt.Errorf("%s is not greater than warning_after %s", urgentAfter, warningAfter),
		)
	}
	return UrgencyPolicy{warningAfter: warningAfter, urgentAfter: urgentAfter}, nil
}

// NewDefaultUrgencyPolicy returns the 15 minute / 30 minute policy used on the board.
func NewDefaultUrgencyPolicy() UrgencyPolicy {
	return UrgencyPolicy{warningAfter: DefaultWarningAfter, urgentAfter: DefaultUrgentAfter}
}

func (p UrgencyPolicy) WarningAfter() time.Duration {
	return p.warningAfter
}

func (p UrgencyPolicy) UrgentAfter() time.Duration {
	return p.urgentAfter
}

// Classify returns the waiting time between createdAt and now and its tier.
//
// A zero or future createdAt cannot be measured: Classify then returns a zero
// Elapsed (Normal) together with an error, so callers can still render the order
// and report the bad timestamp separately.
func (p UrgencyPolicy) Classify(createdAt, now time.Time) (Elapsed, error) {
	if createdAt.IsZero() {
		return Elapsed{Urgency: order.UrgencyNormal}, ErrCreatedAtIsZero
	}

	d := now.Sub(createdAt)
	if d < 0 {
		return Elapsed{Urgency: order.UrgencyNormal}, fmt.Errorf("%w: ahead by %s", ErrCreatedAtInFuture, -d)
	}

	return Elapsed{Duration: d, Urgency: p.tier(d)}, nil
}

func (p UrgencyPolicy) tier(d time.Duration) order.Urgency {
	switch {
	case d >= p.urgentAfter:
		return order.UrgencyUrgent
	case d >= p.warningAfter:
		return order.UrgencyWarning
	default:
		return order.UrgencyNormal
	}
}

// FormatElapsed renders d in whole minutes: "0min", "12min", "1h 5min".
// Negative durations render as "0min".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d / time.Minute)
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%dmin", minutes)
}
