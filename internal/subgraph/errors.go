package subgraph

import (
	"context"
	"errors"
	"fmt"

	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/sentinel"
)

// ErrorCategory is the normalized failure taxonomy for indexer calls.
type ErrorCategory string

const (
	// ErrorTimeout indicates the indexer took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the indexer returned malformed JSON
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates a rejected API key
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage indicates the indexer is unavailable or the circuit is open
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorContractMismatch indicates the query no longer matches the schema
	ErrorContractMismatch ErrorCategory = "contract_mismatch"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorCancelled indicates the caller cancelled the request
	ErrorCancelled ErrorCategory = "cancelled"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps indexer failures with a normalized category.
type ProviderError struct {
	Category   ErrorCategory
	Endpoint   string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("subgraph %s [%s]: %s: %v", e.Endpoint, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("subgraph %s [%s]: %s", e.Endpoint, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a normalized error. Timeouts, outages and rate
// limits are retryable.
func NewProviderError(category ErrorCategory, endpoint, message string, underlying error) *ProviderError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &ProviderError{
		Category:   category,
		Endpoint:   endpoint,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// CategoryOf extracts the error category, defaulting to ErrorInternal.
func CategoryOf(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// ToDomainError maps an upstream failure onto a domain error code. Domain
// errors pass through unchanged.
func ToDomainError(err error, msg string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "upstream unavailable")
	}
	if errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeCanceled, msg)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
	switch pe.Category {
	case ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	case ErrorRateLimited:
		return dErrors.Wrap(err, dErrors.CodeRateLimited, msg)
	case ErrorProviderOutage:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeBadGateway, msg)
	}
}
