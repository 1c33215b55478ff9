// Package errors provides standardized error handling for the rate engine.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Configuration errors (fatal to an aggregate call).
	ErrCodeNoCarriersConfigured ErrorCode = "NO_CARRIERS_CONFIGURED"
	ErrCodeCarrierNotRegistered ErrorCode = "CARRIER_NOT_REGISTERED"

	// Carrier-scoped errors (recorded per carrier, never fatal).
	ErrCodeCarrierAuthFailed  ErrorCode = "CARRIER_AUTH_FAILED"
	ErrCodeCarrierQuoteFailed ErrorCode = "CARRIER_QUOTE_FAILED"
	ErrCodeNoRatesReturned    ErrorCode = "NO_RATES_RETURNED"
	ErrCodeCarrierTimeout     ErrorCode = "CARRIER_TIMEOUT"

	// Request lifecycle errors.
	ErrCodeRequestNotFound  ErrorCode = "REQUEST_NOT_FOUND"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Store errors.
	ErrCodeStoreReadFailed  ErrorCode = "STORE_READ_FAILED"
	ErrCodeStoreWriteFailed ErrorCode = "STORE_WRITE_FAILED"

	// Generic transport errors.
	ErrCodeHTTPRequestError     ErrorCode = "HTTP_REQUEST_ERROR"
	ErrCodeNetworkError         ErrorCode = "NETWORK_ERROR"
	ErrCodeDeserializationError ErrorCode = "DESERIALIZATION_ERROR"
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

// Is lets errors.Is match two StandardErrors by code.
func (e *StandardError) Is(target error) bool {
	var se *StandardError
	if errors.As(target, &se) {
		return e.Code == se.Code
	}
	return false
}

// ==========================
// 2. Error Constructors
// ==========================

// NewNoCarriersConfiguredError creates the single system-level configuration
// error returned when a customer has no enabled carriers.
func NewNoCarriersConfiguredError(customerID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoCarriersConfigured,
		Message:   "no carriers configured",
		Details:   fmt.Sprintf("customerId: %s", customerID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCarrierNotRegisteredError reports an enabled config whose carrier has no
// registered adapter.
func NewCarrierNotRegisteredError(carrierID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierNotRegistered,
		Message:   "no adapter registered for carrier",
		Details:   fmt.Sprintf("carrierId: %s", carrierID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCarrierAuthFailedError creates a retryable carrier authentication error.
func NewCarrierAuthFailedError(carrier string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierAuthFailed,
		Message:   fmt.Sprintf("%s authentication failed", carrier),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCarrierQuoteFailedError creates a retryable carrier quoting error.
func NewCarrierQuoteFailedError(carrier string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierQuoteFailed,
		Message:   fmt.Sprintf("%s quote request failed", carrier),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoRatesReturnedError reports a carrier that answered with an empty rate
// list. Treated as a failure so it surfaces in errors, never as a silently
// empty contribution.
func NewNoRatesReturnedError(carrier string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoRatesReturned,
		Message:   fmt.Sprintf("%s returned no rates", carrier),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCarrierTimeoutError reports an adapter call that exceeded its deadline.
func NewCarrierTimeoutError(carrier string, timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierTimeout,
		Message:   fmt.Sprintf("%s did not respond in time", carrier),
		Details:   fmt.Sprintf("timeout: %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestNotFoundError creates the distinct not-found error for status
// lookups of unknown request ids.
func NewRequestNotFoundError(requestID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestNotFound,
		Message:   "quote request not found",
		Details:   fmt.Sprintf("requestId: %s", requestID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable request validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "shipment request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreReadFailedError creates a retryable store read error.
func NewStoreReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreReadFailed,
		Message:   "failed to read from store",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreWriteFailedError creates a retryable store write error.
func NewStoreWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteFailed,
		Message:   "failed to write to store",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Helpers
// ==========================

// IsNotFound reports whether err is a request-not-found StandardError.
func IsNotFound(err error) bool {
	var se *StandardError
	return errors.As(err, &se) && se.Code == ErrCodeRequestNotFound
}

// IsRetryable reports whether err carries a retryable StandardError. Unknown
// error types are treated as non-retryable.
func IsRetryable(err error) bool {
	var se *StandardError
	return errors.As(err, &se) && se.Retryable
}

// CodeOf extracts the ErrorCode from err, or empty if err is not standard.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsTransientHTTPStatus returns true if the HTTP status code indicates a
// potentially transient error.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
