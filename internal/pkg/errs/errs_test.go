package errs_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("proofImageUrl")

		assert.Equal(t, "proofImageUrl", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: proofImageUrl", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("proofImageUrl", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: proofImageUrl (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("rating", 7, 1, 5)

		assert.Equal(t, "rating", err.ParamName)
		assert.Equal(t, 7, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 5, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 7 is rating, min value is 1, max value is 5", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("courierId")

		assert.Equal(t, "courierId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: courierId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("order already assigned")

		assert.Equal(t, "conflict: order already assigned", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("another courier claimed the order")
		err := errs.NewConflictErrorWithCause("order already assigned", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "conflict: order already assigned (cause: another courier claimed the order)", err.Error())
	})
}

func TestPreconditionFailedError(t *testing.T) {
	err := errs.NewPreconditionFailedError("order is not at pickup")

	assert.Equal(t, "precondition failed: order is not at pickup", err.Error())
	assert.Equal(t, errs.ErrPreconditionFailed, err.Unwrap())
}

func TestInsufficientFundsError(t *testing.T) {
	err := errs.NewInsufficientFundsError("w-1", "500", "300")

	assert.Equal(t, "insufficient funds: wallet w-1 has 300, requested 500", err.Error())
	assert.Equal(t, errs.ErrInsufficientFunds, err.Unwrap())
}

func TestDownstreamDegradedError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewDownstreamDegradedError("routing provider", cause)

	assert.Equal(t, "downstream degraded: routing provider (cause: connection refused)", err.Error())
	assert.Equal(t, errs.ErrDownstreamDegraded, err.Unwrap())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("email"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("rating", 7, 1, 5), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("courierId"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewConflictError("duplicate"), errs.ErrConflict)
		require.ErrorIs(t, errs.NewPreconditionFailedError("wrong phase"), errs.ErrPreconditionFailed)
		require.ErrorIs(t, errs.NewInsufficientFundsError("w", "1", "0"), errs.ErrInsufficientFunds)
	})
}
