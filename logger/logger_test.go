package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func newJSONLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: FormatJSON}
	return NewWithWriter(cfg, "test-svc", &buf), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	return m
}

func TestNew_JSONIncludesServiceAndFields(t *testing.T) {
	l, buf := newJSONLogger("info")
	l.WithComponent("pipeline").Info("Transcription in progress...", Fields(FieldJobID, "abc"))

	m := decodeLine(t, buf)
	if m["service"] != "test-svc" {
		t.Errorf("expected service field, got %v", m["service"])
	}
	if m[FieldComponent] != "pipeline" {
		t.Errorf("expected component field, got %v", m[FieldComponent])
	}
	if m[FieldJobID] != "abc" {
		t.Errorf("expected job_id field, got %v", m[FieldJobID])
	}
	if m["message"] != "Transcription in progress..." {
		t.Errorf("unexpected message %v", m["message"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	l, buf := newJSONLogger("info")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info level, got %q", buf.String())
	}
	l.Warn("shown")
	if buf.Len() == 0 {
		t.Error("expected warn to be written")
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := newJSONLogger("nonsense")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", buf.String())
	}
}

func TestWithError(t *testing.T) {
	l, buf := newJSONLogger("debug")
	l.WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, buf)
	if m["error"] != "boom" {
		t.Errorf("expected error field, got %v", m["error"])
	}
}

func TestWithContext_AddsSpanIDs(t *testing.T) {
	l, buf := newJSONLogger("info")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3},
		SpanID:  trace.SpanID{4, 5, 6},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	l.WithContext(ctx).Info("hello")

	m := decodeLine(t, buf)
	if m[FieldTraceID] != sc.TraceID().String() {
		t.Errorf("expected trace id %s, got %v", sc.TraceID(), m[FieldTraceID])
	}
	if m[FieldSpanID] != sc.SpanID().String() {
		t.Errorf("expected span id %s, got %v", sc.SpanID(), m[FieldSpanID])
	}
}

func TestWithContext_NoSpan(t *testing.T) {
	l, _ := newJSONLogger("info")
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when no span is active")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "info", Format: FormatConsole, NoColor: true}
	NewWithWriter(cfg, "svc", &buf).Info("Content saved", Fields(FieldPath, "out.txt"))
	out := buf.String()
	if !strings.Contains(out, "[INF]") {
		t.Errorf("expected level tag, got %q", out)
	}
	if !strings.Contains(out, "path:out.txt") {
		t.Errorf("expected path field, got %q", out)
	}
}

func TestNop(t *testing.T) {
	Nop().Error("discarded")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Config{}, ""},
		{"bad level", Config{Level: "loud"}, "logging.level"},
		{"bad format", Config{Format: "xml"}, "logging.format"},
		{"bad output", Config{Output: "file"}, "logging.output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ApplyDefaults()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFieldHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("unexpected fields %v", f)
	}
	ef := ErrorFields("write", errors.New("disk full"))
	if ef[FieldError] != "disk full" || ef[FieldOperation] != "write" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("summarize", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration %v", df[FieldDuration])
	}
}
