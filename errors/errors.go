package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates the underlying failure was transient.
	Retryable bool `json:"retryable"`
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

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
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

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Constructors ---

// UnsupportedFormat creates an error for an input whose extension is not accepted.
func UnsupportedFormat(path string, supported []string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedFormat,
		Message: fmt.Sprintf("Unsupported file format. Supported formats are: %s",
			strings.Join(supported, ", ")),
		Details: map[string]any{"path": path},
	}
}

// InputNotFound creates an error for a missing input file.
func InputNotFound(path string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInputNotFound,
		Message: "The specified file does not exist.",
		Details: map[string]any{"path": path},
		Cause:   cause,
	}
}

// InvalidUsage creates an error for a malformed command line.
func InvalidUsage(reason string) *AppError {
	return &AppError{Code: ErrCodeInvalidUsage, Message: reason}
}

// MissingCredential creates an error for an absent API key.
func MissingCredential(envVar string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingCredential,
		Message: fmt.Sprintf("API key is not set. Export %s or set it in the config file.", envVar),
		Details: map[string]any{"env": envVar},
	}
}

// InvalidConfig creates an error for a configuration that failed validation.
func InvalidConfig(reason string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: reason}
}

// TranscriptionFailed creates a transcription stage error.
func TranscriptionFailed(cause error) *AppError {
	return stageError(ErrCodeTranscriptionFailed, "Error transcribing audio.", cause)
}

// SummarizationFailed creates a summarization stage error.
func SummarizationFailed(cause error) *AppError {
	return stageError(ErrCodeSummarizationFailed, "Error summarizing text.", cause)
}

// SynthesisFailed creates a speech synthesis stage error.
func SynthesisFailed(cause error) *AppError {
	return stageError(ErrCodeSynthesisFailed, "Error synthesizing speech.", cause)
}

// FileWriteFailed creates an error for an output file that could not be written.
func FileWriteFailed(path string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeFileWriteFailed,
		Message: fmt.Sprintf("Unable to write %s.", path),
		Details: map[string]any{"path": path},
		Cause:   cause,
	}
}

// Interrupted creates an error for a run cancelled by a signal.
func Interrupted(cause error) *AppError {
	return &AppError{Code: ErrCodeInterrupted, Message: "The run was interrupted.", Cause: cause}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.", Cause: cause,
	}
}

// ErrEmptyResult is the cause attached to a stage that returned no content.
var ErrEmptyResult = stderrors.New("empty result")

func stageError(code ErrorCode, message string, cause error) *AppError {
	e := &AppError{Code: code, Message: message, Cause: cause}
	var r interface{ Temporary() bool }
	if stderrors.As(cause, &r) {
		e.Retryable = r.Temporary()
	}
	return e
}
