package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"kds/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "42")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "42", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("row vanished")
		err := errs.NewObjectNotFoundErrorWithCause("order", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: order, ID is: 42 (cause: row vanished)",
			err.Error())
	})

	t.Run("numeric ids are formatted", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValidationErrors(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("client_name")

		assert.Equal(t, "value is required: client_name", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("invalid with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("source", errors.New("uber is not a known channel"))

		assert.Equal(t, "value is invalid: source (cause: uber is not a known channel)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("retention_hours", -1, 0, "unbounded")

		assert.Equal(t, "value is invalid: -1 is retention_hours, min value is 0, max value is unbounded", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("joined validation errors stay classifiable", func(t *testing.T) {
		err := errors.Join(errs.NewValueIsRequiredError("client_name"), errs.NewValueIsRequiredError("description"))
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("other families are not validation", func(t *testing.T) {
		assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("order", "1")))
		assert.False(t, errs.IsValidation(errs.NewInvalidTransitionError("saiu", "novo")))
		assert.False(t, errs.IsValidation(nil))
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("preparando", "saiu")

	assert.Equal(t, "invalid status transition: from preparando to saiu", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	withCause := errs.NewInvalidTransitionErrorWithCause("novo", "pronto", errors.New("status changed concurrently"))
	assert.Equal(t,
		"invalid status transition: from novo to pronto (cause: status changed concurrently)",
		withCause.Error())
}

func TestStorageError(t *testing.T) {
	t.Run("unwraps to sentinel and cause", func(t *testing.T) {
		err := errs.NewStorageError("insert order", context.DeadlineExceeded)

		assert.Equal(t, "storage failure: insert order (cause: context deadline exceeded)", err.Error())
		require.ErrorIs(t, err, errs.ErrStorage)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("create order: %w", errs.NewStorageError("insert order", errors.New("connection refused")))

		var storageErr *errs.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "insert order", storageErr.Op)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewStorageError("ping", nil)
		assert.Equal(t, "storage failure: ping", err.Error())
		require.ErrorIs(t, err, errs.ErrStorage)
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "invalid status transition", errs.ErrInvalidTransition.Error())
	assert.Equal(t, "storage failure", errs.ErrStorage.Error())
}
