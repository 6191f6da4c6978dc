// Package errors provides the unified error taxonomy for the service.
// It implements structured error types with error codes, HTTP status mapping,
// and retryable detection so callers can distinguish "provider down" from
// "provider responded oddly" from "caller sent garbage".
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// Validation creates a new AppError for invalid caller input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field or form part.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// Upstream creates a new AppError for a non-2xx or malformed response from a
// provider. The message stays generic; the cause carries the wire detail.
func Upstream(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeUpstream, Message: fmt.Sprintf("The %s returned an unexpected response.", service),
		HTTPStatus: http.StatusInternalServerError, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// TranscriptionFailed creates a new AppError for a job the transcription
// provider reported as terminally failed.
func TranscriptionFailed(jobID string) *AppError {
	return &AppError{
		Code: ErrCodeTranscriptionFailed, Message: "Transcription failed.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"job_id": jobID},
	}
}

// MalformedSummary creates a new AppError for summary text that could not be
// parsed into the expected structure. Distinct from Upstream so callers can
// tell a provider outage apart from a best-effort JSON-mode miss.
func MalformedSummary(cause error) *AppError {
	return &AppError{
		Code: ErrCodeMalformedSummary, Message: "The summary provider returned unparseable output.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Cause: cause,
	}
}

// ConnectionFailed creates a new AppError for a failed connection to a provider.
func ConnectionFailed(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to the %s.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// Timeout creates a new AppError for an operation that exceeded its bound.
func Timeout(operation string, bound time.Duration) *AppError {
	e := &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("The %s did not finish in time.", operation),
		HTTPStatus: http.StatusGatewayTimeout, Retryable: false,
		Details: map[string]any{"operation": operation},
	}
	if bound > 0 {
		e.Details["bound"] = bound.String()
	}
	return e
}

// RateLimited creates a new AppError for a provider that rejected us with 429.
func RateLimited(service string) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: fmt.Sprintf("The %s is rate limiting requests.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
