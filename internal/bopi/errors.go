package bopi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeConfig indicates an invalid construction parameter.
	// Config errors are always raised at construction, never at request time.
	ErrTypeConfig ErrorType = iota
	// ErrTypeConnection indicates a transport-level failure
	// (unreachable host, connection refused, timeout)
	ErrTypeConnection
	// ErrTypeAPI indicates an HTTP-level error (non-2xx status) or an
	// unparseable JSON body on a success status
	ErrTypeAPI
	// ErrTypeValidation indicates a sensor value outside its permitted domain
	ErrTypeValidation
	// ErrTypeMissingField indicates a required field absent from a payload
	ErrTypeMissingField
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConfig:
		return "Config Error"
	case ErrTypeConnection:
		return "Connection Error"
	case ErrTypeAPI:
		return "API Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeMissingField:
		return "Missing Field"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ClientError represents an error raised while talking to a BoPi box
type ClientError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Field      string    // Sensor field name (validation and missing-field errors)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewConfigError creates an error for an invalid construction parameter
func NewConfigError(message string) *ClientError {
	return &ClientError{
		Type:    ErrTypeConfig,
		Message: message,
	}
}

// NewConnectionError creates a transport-level error wrapping its cause
func NewConnectionError(message string, err error) *ClientError {
	return &ClientError{
		Type:    ErrTypeConnection,
		Message: message,
		Err:     err,
	}
}

// NewAPIError creates an HTTP-level error
func NewAPIError(statusCode int, message string, err error) *ClientError {
	return &ClientError{
		Type:       ErrTypeAPI,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// NewValidationError creates an error for a field value outside its domain
func NewValidationError(field, message string) *ClientError {
	return &ClientError{
		Type:    ErrTypeValidation,
		Message: message,
		Field:   field,
	}
}

// NewMissingFieldError creates an error for a required field absent from a
// decoded payload. Distinct from validation errors: presence, not range.
func NewMissingFieldError(field string) *ClientError {
	return &ClientError{
		Type:    ErrTypeMissingField,
		Message: fmt.Sprintf("Missing required field in sensor data: %s", field),
		Field:   field,
	}
}

// ClassifyConnectionError analyzes a transport error and builds a connection
// error with a message describing what actually went wrong on the wire.
func ClassifyConnectionError(err error) *ClientError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return NewConnectionError("request timed out", err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NewConnectionError(fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name), err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return NewConnectionError("connection refused", err)
		case errors.Is(opErr.Err, syscall.ECONNRESET):
			return NewConnectionError("connection reset", err)
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return NewConnectionError("host unreachable", err)
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return NewConnectionError("network unreachable", err)
		}
	}

	// url.Error wraps the interesting cause; classify that instead
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		classified := ClassifyConnectionError(urlErr.Err)
		if classified != nil {
			classified.Err = err
			return classified
		}
	}

	return NewConnectionError("error occurred while communicating with the API", err)
}

// IsConfigError checks if an error is a construction parameter error
func IsConfigError(err error) bool {
	return errorOfType(err, ErrTypeConfig)
}

// IsConnectionError checks if an error is a transport-level error
func IsConnectionError(err error) bool {
	return errorOfType(err, ErrTypeConnection)
}

// IsAPIError checks if an error is an HTTP-level or JSON decoding error
func IsAPIError(err error) bool {
	return errorOfType(err, ErrTypeAPI)
}

// IsValidationError checks if an error is a sensor value validation error
func IsValidationError(err error) bool {
	return errorOfType(err, ErrTypeValidation)
}

// IsMissingFieldError checks if an error is a missing required field error
func IsMissingFieldError(err error) bool {
	return errorOfType(err, ErrTypeMissingField)
}

func errorOfType(err error, et ErrorType) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == et
	}
	return false
}
