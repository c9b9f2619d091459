// Package errors provides standardized error handling for the scoring API.
package errors

import (
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
	ErrCodeMissingDataField     ErrorCode = "MISSING_DATA_FIELD"
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidFieldValue    ErrorCode = "INVALID_FIELD_VALUE"
	ErrCodeRequestParseFailed   ErrorCode = "REQUEST_PARSE_FAILED"

	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"

	ErrCodeCutoffConfigInvalid ErrorCode = "CUTOFF_CONFIG_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. API Response Integration
// ==========================

// APIError is the JSON error body returned to callers.
type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// ToAPIError converts a StandardError into the wire-level error body.
func (e *StandardError) ToAPIError() APIError {
	return APIError{
		Error:   e.Message,
		Details: e.Details,
	}
}

// HTTPStatus maps an error code to an HTTP status.
// Every request failure surfaces as 500 per the upstream API contract;
// only rate limiting deviates.
func (e *StandardError) HTTPStatus() int {
	if e.Code == ErrCodeRateLimited {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// Normalize ensures we always have a StandardError to report.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewMissingDataFieldError reports a request body without a "data" object.
func NewMissingDataFieldError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingDataField,
		Message:   "Missing data field in request",
		Details:   "request body must contain a \"data\" object",
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingFieldError reports an absent required applicant field.
func NewMissingFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Message:   fmt.Sprintf("Missing field: %s", field),
		Details:   fmt.Sprintf("required field %q is not present in the data object", field),
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFieldError reports a field whose value cannot be used.
func NewInvalidFieldError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFieldValue,
		Message:   fmt.Sprintf("Invalid value for field: %s", field),
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError reports a body that is not valid JSON.
func NewParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestParseFailed,
		Message:   "Request body is not valid JSON",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError reports an over-limit client.
func NewRateLimitedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewCutoffConfigError reports an unusable cutoff configuration file.
func NewCutoffConfigError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCutoffConfigInvalid,
		Message:   "Cutoff configuration is invalid",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}
