// Package errors provides the structured error type used across audiodigest.
// Every failure that reaches the command line carries an ErrorCode, a
// human-readable message and, when available, the underlying cause.
// ExitCode maps an error to the process exit status.
package errors
