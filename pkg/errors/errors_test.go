package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError_StackTraceOnlyForServerErrors(t *testing.T) {
	assert.Empty(t, NewValidationError("bad").StackTrace)
	assert.Empty(t, NewNotFoundError("Campaign").StackTrace)
	assert.NotEmpty(t, NewInternalError("boom").StackTrace)
	assert.NotEmpty(t, NewStorageUnavailableError("GetItem", errors.New("timeout")).StackTrace)
}

func TestErrorTypeHelpers(t *testing.T) {
	err := NewStorageUnavailableError("Query", errors.New("throttled"))

	assert.True(t, IsStorageUnavailable(err))
	assert.True(t, err.Retryable())
	assert.False(t, IsValidation(err))
	assert.EqualError(t, errors.Unwrap(err), "throttled")
}
