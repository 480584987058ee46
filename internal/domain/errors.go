package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable is returned when a store round-trip exceeds its deadline.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUpstream           = errors.New("upstream error")
	ErrRateLimited        = errors.New("rate limit exceeded")

	ErrConversion = errors.New("conversion failed")
	ErrNoFile     = errors.New("no file uploaded")
)

// UpstreamError carries the message reported by an external service, if any.
// It matches ErrUpstream with errors.Is.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return "upstream error: " + e.Message
	}
	if e.Err != nil {
		return "upstream error: " + e.Err.Error()
	}
	return ErrUpstream.Error()
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

var (
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrInvalidEmail     = errors.New("invalid email")

	ErrAIInputMissing  = errors.New("action and text are required")
	ErrInvalidAction   = errors.New("invalid action")
	ErrAINotConfigured = fmt.Errorf("%w: ai service is not configured", ErrServiceUnavailable)
)
