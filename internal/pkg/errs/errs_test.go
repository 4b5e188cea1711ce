package errs_test

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("order", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: order 123 (cause: record not found)", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("email", errors.New("invalid format"))

		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("pageSize", 150, 1, 100)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, "value is out of range: 150 is pageSize, min value is 1, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("newlines in values are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredErrorWithCause("items", errors.New("empty list"))

	assert.Equal(t, "items", err.ParamName)
	assert.Equal(t, "value is required: items (cause: empty list)", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestInvalidAmountError(t *testing.T) {
	err := errs.NewInvalidAmountError("shippingFee", "-5.00")

	assert.Equal(t, "invalid amount: shippingFee is -5.00", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestWriteConflictError(t *testing.T) {
	cause := errors.New("version 3 expected")
	err := errs.NewWriteConflictErrorWithCause("order", "abc", cause)

	assert.Equal(t, "write conflict: order abc (cause: version 3 expected)", err.Error())
	require.ErrorIs(t, err, errs.ErrWriteConflict)
	assert.NotErrorIs(t, err, cause)
}

func TestStorageUnavailableError(t *testing.T) {
	t.Run("matches both the sentinel and the cause", func(t *testing.T) {
		err := errs.NewStorageUnavailableError("get order", context.DeadlineExceeded)

		require.ErrorIs(t, err, errs.ErrStorageUnavailable)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, "storage unavailable: get order (cause: context deadline exceeded)", err.Error())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewStorageUnavailableError("connect", nil)

		require.ErrorIs(t, err, errs.ErrStorageUnavailable)
		assert.Equal(t, "storage unavailable: connect", err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "invalid amount", errs.ErrInvalidAmount.Error())
	assert.Equal(t, "write conflict", errs.ErrWriteConflict.Error())
	assert.Equal(t, "storage unavailable", errs.ErrStorageUnavailable.Error())
}

func TestErrorsCanBeWrapped(t *testing.T) {
	wrapped := errors.Join(
		errs.NewValueIsRequiredError("vendorId"),
		errs.NewInvalidAmountError("tax", "NaN"),
	)

	require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)
	require.ErrorIs(t, wrapped, errs.ErrInvalidAmount)
	assert.NotErrorIs(t, wrapped, errs.ErrObjectNotFound)
}
