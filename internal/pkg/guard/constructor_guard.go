// Package guard holds ConstructorGuard, a marker that lets value objects tell
// whether they were built through their constructor or are zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into commands and queries. Its zero value fails
// validation, so a struct literal that skipped the constructor is rejected by the
// handler before any storage call.
//
// Example:
//
//	type SweepOrdersCommand struct {
//	    retentionHours int
//	    guard          guard.ConstructorGuard
//	}
//
//	func (c SweepOrdersCommand) Validate() error {
//	    return c.guard.Validate(ErrSweepOrdersCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
