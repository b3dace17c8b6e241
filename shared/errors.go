package shared

import (
	"errors"
	"net/http"
	"strings"
)

// AppError carries an HTTP status alongside the user-facing message. The
// wrapped cause stays internal; only Message is rendered to clients.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
	Data       interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message, Err: err}
}

func NewNotFoundError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message, Err: err}
}

func NewUnauthorizedError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message, Err: err}
}

func NewForbiddenError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Message: message, Err: err}
}

// NewUpstreamError marks a dependency failure (AI service, storage backend).
func NewUpstreamError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusBadGateway, Message: message, Err: err}
}

func NewRateLimitError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusTooManyRequests, Message: message, Err: err}
}

func NewInternalError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsRateLimited reports whether err looks like an upstream rate-limit signal,
// either our own 429 AppError or a raw provider message.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := GetAppError(err); ok && appErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "Resource exhausted") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
