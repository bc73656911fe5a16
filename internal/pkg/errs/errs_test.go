package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("row lock timeout")

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "not found",
			err:      errs.NewObjectNotFoundError("delivery request", "42"),
			expected: "object not found: 42",
		},
		{
			name:     "not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("assignment", "7", cause),
			expected: "object not found: param is: assignment, ID is: 7 (cause: row lock timeout)",
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("payment_method"),
			expected: "value is invalid: payment_method",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("driver_id", cause),
			expected: "value is invalid: driver_id (cause: row lock timeout)",
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90),
			expected: "value is invalid: 91.5 is latitude, min value is -90, max value is 90",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("longitude", 200, -180, 180, cause),
			expected: "value is invalid: 200 is longitude, min value is -180, max value is 180 (cause: row lock timeout)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("pickup_lat"),
			expected: "value is required: pickup_lat",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("reason", cause),
			expected: "value is required: reason (cause: row lock timeout)",
		},
		{
			name:     "state conflict",
			err:      errs.NewStateConflictError("assignment", "REJECTED", "accept"),
			expected: "state conflict: cannot accept assignment in status REJECTED",
		},
		{
			name:     "access denied with role",
			err:      errs.NewAccessDeniedError("CUSTOMER", "assign a driver"),
			expected: "access denied: CUSTOMER is not allowed to assign a driver",
		},
		{
			name:     "access denied without role",
			err:      errs.NewAccessDeniedError("", "reconcile payments"),
			expected: "access denied: reconcile payments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", errs.NewObjectNotFoundError("payment", "1"), errs.ErrObjectNotFound},
		{"invalid", errs.NewValueIsInvalidError("role"), errs.ErrValueIsInvalid},
		{"out of range", errs.NewValueIsOutOfRangeError("amount", -1, 0, 100), errs.ErrValueIsOutOfRange},
		{"required", errs.NewValueIsRequiredError("transaction_id"), errs.ErrValueIsRequired},
		{"state conflict", errs.NewStateConflictError("payment", "SUCCESS", "fail"), errs.ErrStateConflict},
		{"access denied", errs.NewAccessDeniedError("DRIVER", "cancel"), errs.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("handler: %w", tt.err), tt.sentinel)
		})
	}
}

func TestErrorsExposeDetails(t *testing.T) {
	outOfRange := errs.NewValueIsOutOfRangeError("latitude", 95.0, -90.0, 90.0)
	assert.Equal(t, "latitude", outOfRange.ParamName)
	assert.Equal(t, 95.0, outOfRange.Value)
	assert.Equal(t, -90.0, outOfRange.Min)
	assert.Equal(t, 90.0, outOfRange.Max)
	assert.NoError(t, outOfRange.Cause)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, fmt.Errorf("load: %w", errs.NewObjectNotFoundError("delivery request", "9")), &notFound)
	assert.Equal(t, "delivery request", notFound.ParamName)
	assert.Equal(t, "9", notFound.ID)
}

func TestErrorMessagesAreSingleLine(t *testing.T) {
	outOfRange := errs.NewValueIsOutOfRangeError("address", "12 Main St\nFlat 3", 0, 255)
	assert.NotContains(t, outOfRange.Error(), "\n")
	assert.Contains(t, outOfRange.Error(), "12 Main St Flat 3")

	conflict := errs.NewStateConflictError("delivery request", "PENDING\r\nX", "complete")
	assert.NotContains(t, conflict.Error(), "\n")
	assert.NotContains(t, conflict.Error(), "\r")
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("latitude")))
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("driver_id")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("latitude", 91.0, -90.0, 90.0)))
	assert.True(t, errs.IsValidation(errors.Join(errs.NewValueIsRequiredError("a"), errors.New("other"))))

	assert.False(t, errs.IsValidation(errs.NewStateConflictError("payment", "SUCCESS", "fail")))
	assert.False(t, errs.IsValidation(errs.NewAccessDeniedError("DRIVER", "cancel")))
	assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("id", "1")))
	assert.False(t, errs.IsValidation(errors.New("boom")))
}
