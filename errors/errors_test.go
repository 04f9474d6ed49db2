package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

type temporaryErr struct{ temp bool }

func (e temporaryErr) Error() string   { return "temporary" }
func (e temporaryErr) Temporary() bool { return e.temp }

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if err.Message != "boom" {
		t.Errorf("expected message 'boom', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("expected New to be non-retryable")
	}
}

func TestAppError_UnsupportedFormat_Message(t *testing.T) {
	err := UnsupportedFormat("notes.txt", []string{"mp3", "wav"})
	if err.Code != ErrCodeUnsupportedFormat {
		t.Errorf("expected UNSUPPORTED_FORMAT, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "mp3, wav") {
		t.Errorf("expected supported list in message, got %q", err.Message)
	}
	if err.Details["path"] != "notes.txt" {
		t.Errorf("expected path detail, got %v", err.Details["path"])
	}
}

func TestAppError_MissingCredential_Env(t *testing.T) {
	err := MissingCredential("OPENAI_API_KEY")
	if !strings.Contains(err.Message, "OPENAI_API_KEY") {
		t.Errorf("expected env var in message, got %q", err.Message)
	}
	if err.Details["env"] != "OPENAI_API_KEY" {
		t.Errorf("expected env detail, got %v", err.Details["env"])
	}
}

func TestAppError_StageRetryableFromCause(t *testing.T) {
	if !TranscriptionFailed(temporaryErr{temp: true}).Retryable {
		t.Error("expected retryable when cause is temporary")
	}
	if SummarizationFailed(temporaryErr{temp: false}).Retryable {
		t.Error("expected non-retryable when cause is permanent")
	}
	if SynthesisFailed(ErrEmptyResult).Retryable {
		t.Error("expected empty result to be non-retryable")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Internal(nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := FileWriteFailed("out.txt", nil).WithDetails(map[string]any{"stage": "summary"})
	if err.Details["stage"] != "summary" {
		t.Error("expected stage=summary in details")
	}
	if err.Details["path"] != "out.txt" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", InputNotFound("a.wav", nil))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError through wrapping")
	}
	if appErr.Code != ErrCodeInputNotFound {
		t.Errorf("expected INPUT_NOT_FOUND, got %s", appErr.Code)
	}
	if !HasCode(wrapped, ErrCodeInputNotFound) {
		t.Error("expected HasCode to match")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("plain error is not an AppError")
	}
}

func TestExitCode_Table(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", fmt.Errorf("x"), ExitFailure},
		{"canceled", context.Canceled, ExitInterrupted},
		{"usage", InvalidUsage("need a path"), ExitUsage},
		{"credential", MissingCredential("OPENAI_API_KEY"), ExitConfig},
		{"config", InvalidConfig("bad"), ExitConfig},
		{"format", UnsupportedFormat("a.txt", nil), ExitInput},
		{"not found", InputNotFound("a.wav", nil), ExitInput},
		{"transcription", TranscriptionFailed(nil), ExitStage},
		{"summarization", SummarizationFailed(nil), ExitStage},
		{"synthesis", SynthesisFailed(nil), ExitStage},
		{"write", FileWriteFailed("x", nil), ExitWrite},
		{"interrupted", Interrupted(nil), ExitInterrupted},
		{"internal", Internal(nil), ExitFailure},
		{"wrapped stage", fmt.Errorf("run: %w", TranscriptionFailed(nil)), ExitStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
