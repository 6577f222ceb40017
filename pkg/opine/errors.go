package opine

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a well-formed failure response from the API: the
// HTTP status signalled failure and the envelope agreed.
type APIError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Message    string `json:"message"     yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}

	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// ProtocolError indicates the envelope tag and the HTTP status code
// disagreed: a success tag on a non-2xx status, or an error tag on a 2xx
// status. It points at a service defect rather than an expected failure,
// and is never retried.
type ProtocolError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("protocol mismatch: envelope and HTTP status disagree (status %d)", e.StatusCode)
	}

	return fmt.Sprintf("protocol mismatch: envelope and HTTP status disagree (status %d): %s", e.StatusCode, e.Message)
}

// BadIdentifierError reports an input that parses as neither an id nor an
// owner/name pair.
type BadIdentifierError struct {
	Kind  ResourceKind
	Input string
}

// Error implements the error interface.
func (e *BadIdentifierError) Error() string {
	return fmt.Sprintf("%q is not a valid %s identifier: expected owner/name or a %s id", e.Input, e.Kind, e.Kind)
}

// NotFoundError reports that resolving an identifier yielded no resource.
type NotFoundError struct {
	Kind       ResourceKind
	Identifier Identifier
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Identifier)
}

// Common static errors that can be wrapped with context.
var (
	ErrBadJSONResponse    = errors.New("response body is not a valid envelope")
	ErrEndpointRequired   = errors.New("API endpoint is required")
	ErrNoTokenConfigured  = errors.New("no token configured")
	ErrNoMoreItems        = errors.New("no more items")
	ErrCacheDisabled      = errors.New("cache disabled")
	ErrCacheKeyNotFound   = errors.New("key not found")
	ErrCacheEntryExpired  = errors.New("entry expired")
	ErrNATSConfigRequired = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCache   = errors.New("unsupported cache type")
	ErrConfigRequired     = errors.New("config is required")
)

// IsNotFound checks if the error is a resolution or API not-found error.
func IsNotFound(err error) bool {
	nfErr := &NotFoundError{}
	if errors.As(err, &nfErr) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an authentication failure.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks if the error is an authorization failure.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}

	return false
}

// IsProtocolMismatch checks if the error is a status/envelope mismatch.
func IsProtocolMismatch(err error) bool {
	protoErr := &ProtocolError{}

	return errors.As(err, &protoErr)
}
