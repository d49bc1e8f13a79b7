package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across the repository and handler layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("already exists")
)

// ValidationError signals missing or malformed client input (HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConfigurationError signals that a third-party integration cannot be used
// because required credential fields are absent (HTTP 400).
type ConfigurationError struct {
	Service string
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s credentials not fully configured: missing %s",
		e.Service, strings.Join(e.Missing, ", "))
}

// UpstreamError carries a non-success response from a third-party service.
// StatusCode is zero when the call failed before any response arrived.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// EmptyResponseError signals a 2xx upstream response with no body where
// content was expected (HTTP 500).
type EmptyResponseError struct {
	Service string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("received an empty response from %s", e.Service)
}
