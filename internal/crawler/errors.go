package crawler

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is wrapped by NetworkError when the endpoint answers
// with a non-2xx status code.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// NetworkError is returned when a listing page cannot be retrieved, either
// because the request failed or because the endpoint answered with a
// non-2xx status.
type NetworkError struct {
	// URL is the endpoint that was requested.
	URL string

	// StatusCode is the HTTP status code, or 0 when no response was received.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a response body cannot be parsed as markup.
// Missing or malformed fields are not parse errors; they fall back to
// empty values.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse listing page: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}
