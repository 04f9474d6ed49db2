package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeUnsupportedFormat indicates the input file extension is not an accepted audio format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeInputNotFound indicates the input path does not exist or is not a regular file.
	ErrCodeInputNotFound ErrorCode = "INPUT_NOT_FOUND"
	// ErrCodeInvalidUsage indicates the command line was malformed.
	ErrCodeInvalidUsage ErrorCode = "INVALID_USAGE"
)

// Configuration errors
const (
	// ErrCodeMissingCredential indicates a required API credential is absent.
	ErrCodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	// ErrCodeInvalidConfig indicates the configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Stage errors
const (
	// ErrCodeTranscriptionFailed indicates the transcription call failed or returned nothing.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeSummarizationFailed indicates the summarization call failed or returned nothing.
	ErrCodeSummarizationFailed ErrorCode = "SUMMARIZATION_FAILED"
	// ErrCodeSynthesisFailed indicates the speech synthesis call failed or returned nothing.
	ErrCodeSynthesisFailed ErrorCode = "SYNTHESIS_FAILED"
	// ErrCodeFileWriteFailed indicates a stage output could not be persisted.
	ErrCodeFileWriteFailed ErrorCode = "FILE_WRITE_FAILED"
)

// Runtime errors
const (
	// ErrCodeInterrupted indicates the run was cancelled by a signal.
	ErrCodeInterrupted ErrorCode = "INTERRUPTED"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var stageCodes = map[ErrorCode]bool{
	ErrCodeTranscriptionFailed: true,
	ErrCodeSummarizationFailed: true,
	ErrCodeSynthesisFailed:     true,
}

// IsStageCode returns true if the code belongs to a remote pipeline stage.
func IsStageCode(code ErrorCode) bool {
	return stageCodes[code]
}
