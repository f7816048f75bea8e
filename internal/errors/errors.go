// Package errors provides error types for the harvest pipeline.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType categorizes errors for handling decisions.
type ErrorType int

const (
	// Unknown is an uncategorized error.
	Unknown ErrorType = iota
	// Input represents a malformed capture document.
	Input
	// Parse represents parsing errors (URLs, JSON bodies).
	Parse
	// Storage represents vault/storage errors.
	Storage
	// Config represents configuration errors.
	Config
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case Input:
		return "input"
	case Parse:
		return "parse"
	case Storage:
		return "storage"
	case Config:
		return "config"
	default:
		return "unknown"
	}
}

// PipelineError represents a categorized pipeline error.
type PipelineError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error during %s: %s (caused by: %v)",
			e.Type.String(), e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error during %s: %s",
		e.Type.String(), e.Operation, e.Message)
}

// Unwrap returns the underlying error.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// New creates a new PipelineError.
func New(errType ErrorType, operation, message string, cause error) *PipelineError {
	return &PipelineError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewInputError creates an input error for a malformed capture document.
func NewInputError(operation string, cause error) *PipelineError {
	return New(Input, operation, "malformed capture document", cause)
}

// NewParseError creates a parse error.
func NewParseError(operation, message string, cause error) *PipelineError {
	return New(Parse, operation, message, cause)
}

// NewStorageError creates a storage error.
func NewStorageError(operation string, cause error) *PipelineError {
	return New(Storage, operation, "storage operation failed", cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *PipelineError {
	return New(Config, "configure", message, cause)
}

// IsInputError checks if an error is a malformed-input error.
func IsInputError(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Type == Input
	}
	return false
}

// GetErrorType extracts the error type from an error.
func GetErrorType(err error) ErrorType {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Type
	}
	return Unknown
}
