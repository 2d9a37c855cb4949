// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrMissingCredentials indicates a collaborator needs credentials
	// that were not configured.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrCacheExpired indicates cached data has exceeded TTL.
	ErrCacheExpired = errors.New("cache expired")

	// ErrCatalogUnavailable indicates the regional catalog could not be
	// loaded; the regional flow degrades, the process keeps running.
	ErrCatalogUnavailable = errors.New("regional catalog unavailable")
)

// ValidationError represents input validation failures. These map to a
// 4xx response: the request is rejected before any processing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// CollaboratorError represents a failure in a best-effort external
// service (translation, web search). It is always recovered locally and
// never surfaces to the caller.
type CollaboratorError struct {
	Service string
	Err     error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s failed: %v", e.Service, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// NewCollaboratorError creates a new collaborator error.
func NewCollaboratorError(service string, err error) *CollaboratorError {
	return &CollaboratorError{Service: service, Err: err}
}

// HarvestError represents a source fetch failure with context.
type HarvestError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *HarvestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("harvest error (url=%s, status=%d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("harvest error (url=%s): %v", e.URL, e.Err)
}

func (e *HarvestError) Unwrap() error {
	return e.Err
}

// NewHarvestError creates a new harvest error.
func NewHarvestError(url string, statusCode int, err error) *HarvestError {
	return &HarvestError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// DataLoadError represents a catalog or knowledge-base file that could
// not be read or decoded at startup. Fatal for the primary knowledge
// base; the regional catalog degrades instead.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("data load error (path=%s): %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError creates a new data load error.
func NewDataLoadError(path string, err error) *DataLoadError {
	return &DataLoadError{Path: path, Err: err}
}
