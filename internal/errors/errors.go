package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
)

// Error types for different categories of failures
type ErrorType string

const (
	ErrorTypeInvalidInput  ErrorType = "invalid_input"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeComputation   ErrorType = "computation"
)

// Sentinels matched by errors.Is against a StructuredError of the same type.
var (
	ErrInvalidInput  = stderrors.New("invalid input")
	ErrConfiguration = stderrors.New("invalid configuration")
	ErrComputation   = stderrors.New("computation failed")
)

// StructuredError provides rich error context
type StructuredError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
	Context   map[string]interface{}
	Stack     []uintptr
}

// Error implements the error interface
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Operation, e.Message)
}

// Unwrap returns the underlying cause
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for the error's type.
func (e *StructuredError) Is(target error) bool {
	switch e.Type {
	case ErrorTypeInvalidInput:
		return target == ErrInvalidInput
	case ErrorTypeConfiguration:
		return target == ErrConfiguration
	case ErrorTypeComputation:
		return target == ErrComputation
	}
	return false
}

// New creates a new structured error
func New(errType ErrorType, operation, message string) *StructuredError {
	return &StructuredError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
		Stack:     captureStack(),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, operation, message string) *StructuredError {
	if err == nil {
		return nil
	}

	return &StructuredError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Cause:     err,
		Context:   make(map[string]interface{}),
		Stack:     captureStack(),
	}
}

// WithContext adds context information to an error
func (e *StructuredError) WithContext(key string, value interface{}) *StructuredError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// captureStack captures the current stack trace
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:]) // skip Callers, captureStack and the constructor
	return pcs[:n]
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(operation, message string) *StructuredError {
	return New(ErrorTypeInvalidInput, operation, message)
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(operation, message string) *StructuredError {
	return New(ErrorTypeConfiguration, operation, message)
}

// NewComputationError creates a computation error
func NewComputationError(operation, message string) *StructuredError {
	return New(ErrorTypeComputation, operation, message)
}

// WrapConfigurationError wraps an error as a configuration error
func WrapConfigurationError(err error, operation, message string) *StructuredError {
	return Wrap(err, ErrorTypeConfiguration, operation, message)
}

// NewLengthMismatchError reports two buffers that must share a length but don't.
func NewLengthMismatchError(operation string, lenA, lenB int) *StructuredError {
	msg := fmt.Sprintf("buffer length mismatch: %d != %d", lenA, lenB)
	return NewInvalidInputError(operation, msg).
		WithContext("len_a", lenA).
		WithContext("len_b", lenB)
}
