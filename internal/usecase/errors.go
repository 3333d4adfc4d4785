package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrDailyLimitExceeded means the provider rejected the call because
	// the daily request quota is spent. It is never retried and always
	// propagated so a running population halts instead of burning calls.
	ErrDailyLimitExceeded = errors.New("provider daily request limit exceeded")
)
