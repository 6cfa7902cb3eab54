package app

import (
	"errors"
	"fmt"
)

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// AuthFailed indicates the API token could not be obtained.
	AuthFailed AppErrorType = iota
	// FetchFailed indicates the remote script inventory could not be listed.
	FetchFailed
	// CollectFailed indicates local script files could not be read.
	CollectFailed
	// SyncFailed indicates a create or update call failed.
	SyncFailed
	// SpeedtestFailed indicates the speed test monitor pipeline failed.
	SpeedtestFailed
	// ValidationFailed indicates invalid options or configuration.
	ValidationFailed
)

// String returns the string representation of the error type.
func (t AppErrorType) String() string {
	switch t {
	case AuthFailed:
		return "AuthFailed"
	case FetchFailed:
		return "FetchFailed"
	case CollectFailed:
		return "CollectFailed"
	case SyncFailed:
		return "SyncFailed"
	case SpeedtestFailed:
		return "SpeedtestFailed"
	case ValidationFailed:
		return "ValidationFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewAuthError creates an authentication error.
func NewAuthError(message string, cause error) *AppError {
	return NewAppError(AuthFailed, message, cause)
}

// NewFetchError creates a remote fetch error.
func NewFetchError(message string, cause error) *AppError {
	return NewAppError(FetchFailed, message, cause)
}

// NewCollectError creates a local collection error.
func NewCollectError(message string, cause error) *AppError {
	return NewAppError(CollectFailed, message, cause)
}

// NewSyncError creates a sync error.
func NewSyncError(message string, cause error) *AppError {
	return NewAppError(SyncFailed, message, cause)
}

// NewSpeedtestError creates a speed test error.
func NewSpeedtestError(message string, cause error) *AppError {
	return NewAppError(SpeedtestFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType AppErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == errType
}
