// Package errs provides standardized error types for the order board.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package maps the board's error taxonomy onto concrete types:
//   - validation failures: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - missing orders: ObjectNotFoundError
//   - rejected status changes: InvalidTransitionError
//   - backing store failures: StorageError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, or with IsValidation
// for the whole validation family.
package errs
