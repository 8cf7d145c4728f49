package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Provider failures are reported with the typed errors below so callers can
// tell a rejected call from unusable output. Each wraps the SDK error when
// there is one.

// ErrRateLimit is returned when the generator answered HTTP 429.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("generator rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is returned when the generator answered but the body
// is not content we can use: unparseable, off-schema or empty. Content
// keeps the raw output for logging.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("unusable generator output: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures and any non-429 API
// error.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "generator unavailable"
	}
	return fmt.Sprintf("generator unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is returned when output stopped at the token limit.
// A cut-off JSON document is never valid content.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "generator output truncated at the token limit"
}

// Failure reasons reported by Reason.
const (
	ReasonRateLimited = "rate_limited"
	ReasonUnavailable = "unavailable"
	ReasonInvalid     = "invalid_output"
	ReasonTruncated   = "truncated"
	ReasonUnknown     = "unknown"
)

// Reason names the kind of generator failure for log fields.
func Reason(err error) string {
	var (
		rl   *ErrRateLimit
		inv  *ErrInvalidResponse
		down *ErrProviderUnavailable
		cut  *ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &rl):
		return ReasonRateLimited
	case errors.As(err, &inv):
		return ReasonInvalid
	case errors.As(err, &down):
		return ReasonUnavailable
	case errors.As(err, &cut):
		return ReasonTruncated
	}
	return ReasonUnknown
}
