// Package apierrors defines the error taxonomy shared by the client
// library. Every error surfaced to callers is one of the types below,
// so callers can branch with errors.As without string matching.
package apierrors

import (
	"errors"
	"fmt"
)

// ConfigError indicates missing or malformed configuration: a broken
// kubeconfig, absent in-cluster credentials, or an auth setting whose
// location is neither header nor query. Not retryable.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return "config: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError indicates a caller mistake at the API surface: a
// required field missing on construction, an unknown option, a body
// combined with post params, or an unregistered schema type name.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// SerializationError indicates a wire payload that could not be
// converted to or from a domain object: JSON parse failures, date or
// datetime parse failures, and schema/wire mismatches.
type SerializationError struct {
	Reason string
	Err    error
}

func (e *SerializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("serialization: %s: %v", e.Reason, e.Err)
	}
	return "serialization: " + e.Reason
}

func (e *SerializationError) Unwrap() error { return e.Err }

// TransportError indicates a failure below the API layer: connection
// refused, TLS handshake failure, or an I/O error mid-read. StatusCode
// is zero when the failure happened before a response arrived.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the API server. Reason and
// Message are taken from the server's Status object when one was
// present in the body; Body always carries the raw response.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d (%s): %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// ProtocolError indicates a violated stream contract: an unexpected
// websocket frame type or an unknown URL scheme on upgrade. Fatal for
// the affected stream.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "protocol: " + e.Reason }

// IsConfig reports whether err is, or wraps, a ConfigError.
func IsConfig(err error) bool {
	var t *ConfigError
	return errors.As(err, &t)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var t *APIError
	return errors.As(err, &t) && t.StatusCode == 404
}

// IsConflict reports whether err is an APIError with status 409.
func IsConflict(err error) bool {
	var t *APIError
	return errors.As(err, &t) && t.StatusCode == 409
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var t *APIError
	return errors.As(err, &t) && t.StatusCode == 401
}

// IsGone reports whether err is an APIError with status 410, the code
// the server uses for an expired watch resourceVersion.
func IsGone(err error) bool {
	var t *APIError
	return errors.As(err, &t) && t.StatusCode == 410
}
