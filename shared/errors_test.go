package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppError(t *testing.T) {
	appErr, ok := GetAppError(NewNotFoundError(nil, "Record not found"))
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "Record not found", appErr.Message)

	wrapped := fmt.Errorf("lookup failed: %w", NewForbiddenError(nil, "Not authorized"))
	appErr, ok = GetAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)

	_, ok = GetAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestAppError_Error(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError(cause, "Database error")
	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	assert.Equal(t, "Database error", NewInternalError(nil, "Database error").Error())
}

func TestIsRateLimited(t *testing.T) {
	assert.False(t, IsRateLimited(nil))
	assert.False(t, IsRateLimited(errors.New("connection refused")))

	assert.True(t, IsRateLimited(NewRateLimitError(nil, "AI service rate limited")))
	assert.True(t, IsRateLimited(errors.New("googleapi: got HTTP response code 429")))
	assert.True(t, IsRateLimited(errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED")))
	assert.True(t, IsRateLimited(errors.New("Resource exhausted: quota exceeded")))

	wrapped := fmt.Errorf("chat failed: %w", NewRateLimitError(nil, "AI service rate limited"))
	assert.True(t, IsRateLimited(wrapped))
}
