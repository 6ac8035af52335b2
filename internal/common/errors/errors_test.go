// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{"fetch failure", NewCandidateFetchFailedError(errors.New("boom")), ErrCodeCandidateFetchFailed},
		{"timeout", NewCandidateFetchTimeoutError("deadline"), ErrCodeCandidateFetchTimeout},
		{"invalid context", NewInvalidShiftContextError("no site"), ErrCodeInvalidShiftContext},
		{"query failure", NewQueryExecutionFailedError(errors.New("boom")), ErrCodeQueryExecutionFailed},
		{"wrapped standard error", fmt.Errorf("pipeline: %w", NewSearchQueryFailedError(errors.New("boom"))), ErrCodeSearchQueryFailed},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"nil", nil, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeOf(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"fetch failure", NewCandidateFetchFailedError(errors.New("pg down")), "unable to load recommendations"},
		{"timeout", NewCandidateFetchTimeoutError("deadline"), "unable to load recommendations"},
		{"plain error", errors.New("anything"), "unable to load recommendations"},
		{"invalid context", NewInvalidShiftContextError("no site"), "select a site and date to see recommendations"},
		{"profile missing", NewScoringProfileNotFoundError("night-shift"), "recommendation scoring is misconfigured"},
		{"profile invalid", NewScoringProfileInvalidError("weights"), "recommendation scoring is misconfigured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessage(tt.err))
		})
	}
}

func TestUserMessage_NeverLeaksDetails(t *testing.T) {
	err := NewQueryExecutionFailedError(errors.New("pq: password authentication failed for user admin"))
	msg := UserMessage(err)
	assert.NotContains(t, msg, "password")
	assert.NotContains(t, msg, "pq:")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewCandidateFetchFailedError(errors.New("boom"))))
	assert.True(t, IsRetryable(NewCandidateFetchTimeoutError("deadline")))
	assert.False(t, IsRetryable(NewInvalidShiftContextError("no site")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestStandardError_Error(t *testing.T) {
	err := NewInvalidShiftContextError("siteId is required")
	assert.Contains(t, err.Error(), "INVALID_SHIFT_CONTEXT")
	assert.Contains(t, err.Error(), "Invalid shift context")
}
