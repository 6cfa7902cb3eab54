package ninjaone

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of API client error.
type ErrorType int

const (
	// ErrorAuthFailed indicates the client credentials exchange failed.
	ErrorAuthFailed ErrorType = iota
	// ErrorFetchFailed indicates the script inventory could not be fetched.
	ErrorFetchFailed
	// ErrorSyncFailed indicates a create or update request was rejected.
	ErrorSyncFailed
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrorAuthFailed:
		return "AuthFailed"
	case ErrorFetchFailed:
		return "FetchFailed"
	case ErrorSyncFailed:
		return "SyncFailed"
	default:
		return "Unknown"
	}
}

// ClientError represents an RMM API error.
type ClientError struct {
	// Type is the error type classification.
	Type ErrorType
	// Op is the operation that failed (e.g. "list scripts").
	Op string
	// URL is the request URL.
	URL string
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	// Body is a trimmed snippet of the response body.
	Body string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	msg := fmt.Sprintf("ninjaone %s [%s] %s", e.Op, e.Type, e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// IsType reports whether err is a ClientError of the given type.
func IsType(err error, typ ErrorType) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == typ
}

// NewAuthError creates an authentication failed error.
func NewAuthError(url string, status int, body string, cause error) *ClientError {
	return &ClientError{Type: ErrorAuthFailed, Op: "authenticate", URL: url, StatusCode: status, Body: body, Cause: cause}
}

// NewFetchError creates a fetch failed error.
func NewFetchError(url string, status int, body string, cause error) *ClientError {
	return &ClientError{Type: ErrorFetchFailed, Op: "list scripts", URL: url, StatusCode: status, Body: body, Cause: cause}
}

// NewSyncError creates a create/update failed error.
func NewSyncError(op, url string, status int, body string, cause error) *ClientError {
	return &ClientError{Type: ErrorSyncFailed, Op: op, URL: url, StatusCode: status, Body: body, Cause: cause}
}
