package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field or part is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Provider errors
const (
	// ErrCodeUpstream indicates a non-2xx or malformed response from a provider.
	ErrCodeUpstream ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeTranscriptionFailed indicates the transcription provider reported
	// a terminal error status for a job.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeMalformedSummary indicates the generative provider responded, but
	// its summary text was not parseable into the expected structure.
	ErrCodeMalformedSummary ErrorCode = "MALFORMED_SUMMARY"
)

// Connection/Availability errors (retryable)
const (
	// ErrCodeConnectionFailed indicates a failed connection to a provider.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates an operation exceeded its configured bound.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates a provider rate-limited our calls.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeRateLimited:      true,
	ErrCodeUpstream:         true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
