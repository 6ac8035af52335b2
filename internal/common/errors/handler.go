// internal/common/errors/handler.go
package errors

import "errors"

// UserMessage maps an internal error to the message surfaced to callers.
// Internal details never leak; the generic message covers every collaborator
// failure so the UI can render one recoverable error state.
func UserMessage(err error) string {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) {
		return "unable to load recommendations"
	}

	switch stdErr.Code {
	case ErrCodeInvalidShiftContext:
		return "select a site and date to see recommendations"
	case ErrCodeScoringProfileNotFound, ErrCodeScoringProfileInvalid:
		return "recommendation scoring is misconfigured"
	default:
		return "unable to load recommendations"
	}
}

// IsRetryable reports whether the caller may usefully re-trigger the request.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}
