package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredError_Error(t *testing.T) {
	// Test error without cause
	err := New(ErrorTypeInvalidInput, "distance", "test message")
	assert.Equal(t, "[invalid_input] distance: test message", err.Error())

	// Test error with cause
	cause := errors.New("underlying error")
	err = Wrap(cause, ErrorTypeConfiguration, "use_kernel", "bad mode")
	assert.Contains(t, err.Error(), "[configuration] use_kernel: bad mode")
	assert.Contains(t, err.Error(), "underlying error")
	assert.Equal(t, cause, err.Unwrap())
}

func TestStructuredError_WithContext(t *testing.T) {
	err := New(ErrorTypeInvalidInput, "test_op", "test message")
	err = err.WithContext("len_a", 3).WithContext("op", "xor")

	assert.Equal(t, 3, err.Context["len_a"])
	assert.Equal(t, "xor", err.Context["op"])
}

func TestStructuredError_Is(t *testing.T) {
	invalid := NewInvalidInputError("distance", "msg")
	assert.True(t, errors.Is(invalid, ErrInvalidInput))
	assert.False(t, errors.Is(invalid, ErrConfiguration))

	cfg := NewConfigurationError("load", "msg")
	assert.True(t, errors.Is(cfg, ErrConfiguration))
	assert.False(t, errors.Is(cfg, ErrInvalidInput))

	comp := NewComputationError("benchmark", "msg")
	assert.True(t, errors.Is(comp, ErrComputation))
	assert.False(t, errors.Is(comp, ErrInvalidInput))

	// The cause chain is still walked
	cause := errors.New("envconfig failure")
	wrapped := WrapConfigurationError(cause, "load", "msg")
	assert.True(t, errors.Is(wrapped, cause))
	assert.True(t, errors.Is(wrapped, ErrConfiguration))
}

func TestNewLengthMismatchError(t *testing.T) {
	err := NewLengthMismatchError("distance", 3, 4)
	require.NotNil(t, err)

	assert.Equal(t, ErrorTypeInvalidInput, err.Type)
	assert.Equal(t, "distance", err.Operation)
	assert.Equal(t, 3, err.Context["len_a"])
	assert.Equal(t, 4, err.Context["len_b"])
	assert.Equal(t, "[invalid_input] distance: buffer length mismatch: 3 != 4", err.Error())

	var se *StructuredError
	require.True(t, errors.As(error(err), &se))
	assert.Same(t, err, se)
}

func TestErrorWrapping(t *testing.T) {
	// Wrap returns nil for nil error
	assert.Nil(t, Wrap(nil, ErrorTypeConfiguration, "op", "msg"))
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "invalid_input", string(ErrorTypeInvalidInput))
	assert.Equal(t, "configuration", string(ErrorTypeConfiguration))
	assert.Equal(t, "computation", string(ErrorTypeComputation))
}

func TestStackTraceCapture(t *testing.T) {
	err := New(ErrorTypeInvalidInput, "test", "message")
	// Should have captured some stack frames
	assert.Greater(t, len(err.Stack), 0)
}
