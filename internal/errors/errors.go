// Package errors defines stable error codes for the analysis engine.
//
// Most engine failure modes do not surface as Go errors at all: unparseable
// files, unresolved imports, and unknown inheritance targets degrade the
// output (fewer edges, fewer nodes) instead of failing the run. The codes
// here cover the remaining cases that callers need to branch on.
package errors

import "fmt"

// ErrorCode represents stable error codes for engine failure modes
type ErrorCode string

const (
	// StateVersionMismatch indicates a persisted incremental state with an
	// incompatible format version. Callers treat this as "no previous state".
	StateVersionMismatch ErrorCode = "STATE_VERSION_MISMATCH"
	// StoreUnavailable indicates the state store could not be reached
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// ProseGenerationFailed indicates the external prose generator failed
	// or was cancelled; partial prose must never be merged
	ProseGenerationFailed ErrorCode = "PROSE_GENERATION_FAILED"
	// InvalidInput indicates malformed caller-supplied input
	InvalidInput ErrorCode = "INVALID_INPUT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// EngineError represents an engine error with a stable code
type EngineError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new EngineError
func New(code ErrorCode, message string, cause error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *EngineError) WithDetails(details interface{}) *EngineError {
	e.Details = details
	return e
}

// CodeOf returns the engine error code of err, or InternalError when err
// is not an EngineError.
func CodeOf(err error) ErrorCode {
	if ee, ok := err.(*EngineError); ok {
		return ee.Code
	}
	return InternalError
}
