package errors

import (
	"context"
	stderrors "errors"
)

// Process exit statuses.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitConfig      = 3
	ExitInput       = 4
	ExitStage       = 5
	ExitWrite       = 6
	ExitInterrupted = 130
)

// ExitCode maps err to a process exit status. A nil error yields ExitOK.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	appErr, ok := AsAppError(err)
	if !ok {
		if stderrors.Is(err, context.Canceled) {
			return ExitInterrupted
		}
		return ExitFailure
	}
	switch appErr.Code {
	case ErrCodeInvalidUsage:
		return ExitUsage
	case ErrCodeMissingCredential, ErrCodeInvalidConfig:
		return ExitConfig
	case ErrCodeUnsupportedFormat, ErrCodeInputNotFound:
		return ExitInput
	case ErrCodeFileWriteFailed:
		return ExitWrite
	case ErrCodeInterrupted:
		return ExitInterrupted
	}
	if IsStageCode(appErr.Code) {
		return ExitStage
	}
	return ExitFailure
}
