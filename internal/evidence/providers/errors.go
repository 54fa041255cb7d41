package providers

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies why a live lookup failed. It labels log lines and
// lookup metrics; the snapshot itself only records StatusError.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"
	ErrorBadData        ErrorCategory = "bad_data"
	ErrorAuthentication ErrorCategory = "authentication" // rejected API key
	ErrorProviderOutage ErrorCategory = "provider_outage"
	ErrorRateLimited    ErrorCategory = "rate_limited" // data.go.kr daily quota
	ErrorInternal       ErrorCategory = "internal"
)

func (c ErrorCategory) transient() bool {
	switch c {
	case ErrorTimeout, ErrorProviderOutage, ErrorRateLimited:
		return true
	}
	return false
}

// ProviderError is a categorized lookup failure. Normalizers never return it
// to callers; they log it and degrade to the provider's fallback value.
type ProviderError struct {
	Category   ErrorCategory
	Provider   Name
	Message    string
	Underlying error
}

func (e *ProviderError) Error() string {
	if e.Underlying == nil {
		return fmt.Sprintf("%s lookup %s: %s", e.Provider, e.Category, e.Message)
	}
	return fmt.Sprintf("%s lookup %s: %s: %v", e.Provider, e.Category, e.Message, e.Underlying)
}

func (e *ProviderError) Unwrap() error { return e.Underlying }

func NewProviderError(category ErrorCategory, provider Name, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		Provider:   provider,
		Message:    message,
		Underlying: underlying,
	}
}

// IsRetryable reports whether a later screening could plausibly succeed
// against the same upstream.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Category.transient()
}

// GetCategory returns the category of a ProviderError anywhere in the chain,
// or ErrorInternal.
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}
