// Package errors provides standardized, coded error handling for the
// recommendation engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCandidateFetchFailed  ErrorCode = "CANDIDATE_FETCH_FAILED"
	ErrCodeCandidateFetchTimeout ErrorCode = "CANDIDATE_FETCH_TIMEOUT"
	ErrCodeInvalidShiftContext   ErrorCode = "INVALID_SHIFT_CONTEXT"

	ErrCodeGeoResolutionFailed ErrorCode = "GEO_RESOLUTION_FAILED"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed          ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeScoringProfileNotFound ErrorCode = "SCORING_PROFILE_NOT_FOUND"
	ErrCodeScoringProfileInvalid  ErrorCode = "SCORING_PROFILE_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the error code from err, or INTERNAL_ERROR when err is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// ==========================
// 2. Error Constructors
// ==========================

// NewCandidateFetchFailedError wraps a candidate-source failure. Retryable:
// the caller may re-trigger by reselecting the same site/date.
func NewCandidateFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateFetchFailed,
		Message:   "Failed to fetch candidate guards",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCandidateFetchTimeoutError marks a fetch that exceeded its deadline.
func NewCandidateFetchTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateFetchTimeout,
		Message:   "Candidate fetch timed out",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidShiftContextError marks a request missing required parameters.
func NewInvalidShiftContextError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidShiftContext,
		Message:   "Invalid shift context",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGeoResolutionFailedError wraps a geocoder failure. Callers degrade to a
// neutral distance score rather than propagating this to the user.
func NewGeoResolutionFailedError(postalCode string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeoResolutionFailed,
		Message:   "Failed to resolve postal code",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"postalCode": postalCode},
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError wraps a database query failure.
func NewQueryExecutionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database error while loading candidates",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError wraps an Elasticsearch query failure.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search error while loading candidates",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringProfileNotFoundError marks a missing named scoring profile.
func NewScoringProfileNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringProfileNotFound,
		Message:   "Scoring profile not found in registry",
		Details:   fmt.Sprintf("profile: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringProfileInvalidError marks a profile that failed schema or
// weight validation.
func NewScoringProfileInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringProfileInvalid,
		Message:   "Scoring profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
