package order

import (
	"fmt"
	"strings"

	"kds/internal/pkg/errs"
)

// Status represents the lifecycle state of an order on the board.
//
// State transitions:
//
//	New ──> Preparing ──> Ready ──> Dispatched
//	 │          │           │
//	 └──────────┴───────────┴────> Cancelled
//
// Dispatched and Cancelled have no outgoing transitions and are therefore terminal.
// The persisted and wire representation is the lowercase Portuguese label used by
// the kitchen ("novo", "preparando", "pronto", "saiu", "cancelado").
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of every order.
	New

	// Preparing means the kitchen has started on the order.
	Preparing

	// Ready means the order is packed and waiting for pickup.
	Ready

	// Dispatched means the order left the counter. Terminal.
	Dispatched

	// Cancelled means the order was dropped before dispatch. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "novo",
		Preparing:  "preparando",
		Ready:      "pronto",
		Dispatched: "saiu",
		Cancelled:  "cancelado",
	}
}

// getTransitions is the single source of truth for the state machine. Terminal
// statuses are the ones mapped to an empty slice.
//
//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		New:        {Preparing, Cancelled},
		Preparing:  {Ready, Cancelled},
		Ready:      {Dispatched, Cancelled},
		Dispatched: {},
		Cancelled:  {},
	}
}

// getStatusRanks orders statuses for display.
//
//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
func getStatusRanks() map[Status]int {
	return map[Status]int{
		New:        1,
		Preparing:  2,
		Ready:      3,
		Dispatched: 4,
		Cancelled:  5,
	}
}

// ParseStatus converts a wire label into a Status.
// Matching ignores surrounding whitespace and case.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for status := range getTransitions() {
		if getStatusStrings()[status] == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", value),
	)
}

// AllStatuses returns every valid status in rank order.
func AllStatuses() []Status {
	return []Status{New, Preparing, Ready, Dispatched, Cancelled}
}

// TerminalStatuses returns the statuses without outgoing transitions, in rank order.
func TerminalStatuses() []Status {
	result := make([]Status, 0, 2)
	for _, s := range AllStatuses() {
		if s.IsTerminal() {
			result = append(result, s)
		}
	}
	return result
}

// ActiveStatuses returns the non-terminal statuses, in rank order.
// These are the statuses shown on the live board and counted by the header.
func ActiveStatuses() []Status {
	result := make([]Status, 0, 3)
	for _, s := range AllStatuses() {
		if !s.IsTerminal() {
			result = append(result, s)
		}
	}
	return result
}

// Validate checks if the Status value is one of the five board statuses.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted label of the status, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
// Invalid statuses are not terminal.
func (s Status) IsTerminal() bool {
	next, ok := getTransitions()[s]
	return ok && len(next) == 0
}

// Rank returns the display rank of s. Invalid statuses sort last.
func (s Status) Rank() int {
	if rank, ok := getStatusRanks()[s]; ok {
		return rank
	}
	return len(getStatusRanks()) + 1
}

// CanTransitionTo reports whether target is directly reachable from s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError when target cannot be reached
// from s, and a validation error when target itself is not a valid status.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}
