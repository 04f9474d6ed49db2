package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()
	shutdown, err := Setup(context.Background(), Config{}, "audiodigest", "test", "production", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Error("expected global tracer provider to be untouched")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestSetup_StdoutTracing(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Tracing: TracerConfig{Enabled: true}}
	cfg.ApplyDefaults()

	shutdown, err := Setup(context.Background(), cfg, "audiodigest", "test", "production", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, span := StartSpan(context.Background(), "pipeline.run")
	SetSpanAttributes(ctx, attribute.String(AttrJobID, "job-1"))
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"pipeline.run", "job-1", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in exported span:\n%s", want, out)
		}
	}
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Tracing.Exporter != ExporterStdout || cfg.Tracing.SampleRate == nil || *cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("unexpected tracing defaults %+v", cfg.Tracing)
	}
	if cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("unexpected metrics interval %v", cfg.Metrics.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	cfg.Tracing.Exporter = "jaeger"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "exporter") {
		t.Errorf("expected exporter error, got %v", err)
	}
	cfg.Tracing.Exporter = ExporterOTLP
	tooHigh := 2.0
	cfg.Tracing.SampleRate = &tooHigh
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "sample_rate") {
		t.Errorf("expected sample rate error, got %v", err)
	}
}

func TestConfig_ZeroSampleRateDisablesSampling(t *testing.T) {
	zero := 0.0
	cfg := Config{Tracing: TracerConfig{SampleRate: &zero}}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if *cfg.Tracing.SampleRate != 0 {
		t.Fatalf("sample rate rewritten to %v", *cfg.Tracing.SampleRate)
	}

	half := 0.5
	tests := []struct {
		name string
		rate *float64
		want string
	}{
		{"unset", nil, sdktrace.AlwaysSample().Description()},
		{"zero", &zero, sdktrace.NeverSample().Description()},
		{"ratio", &half, sdktrace.TraceIDRatioBased(0.5).Description()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newSampler(tt.rate).Description(); got != tt.want {
				t.Errorf("sampler = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetrics_RecordStage(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	ctx := context.Background()
	m.RecordStage(ctx, "transcribe", "openai-whisper", "ok", 2*time.Second)
	m.RecordStage(ctx, "summarize", "openai-chat", "error", time.Second)
	m.RecordError(ctx, "SUMMARIZATION_FAILED", "summarize")
	m.RecordWrite(ctx, "transcription", 11)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[md.Name] += dp.Value
				}
			}
		}
	}
	if sums["audiodigest.stage.total"] != 2 {
		t.Errorf("expected 2 stage executions, got %d", sums["audiodigest.stage.total"])
	}
	if sums["audiodigest.error.total"] != 1 {
		t.Errorf("expected 1 error, got %d", sums["audiodigest.error.total"])
	}
	if sums["audiodigest.output.bytes"] != 11 {
		t.Errorf("expected 11 bytes, got %d", sums["audiodigest.output.bytes"])
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordStage(context.Background(), "transcribe", "p", "ok", time.Second)
	m.RecordError(context.Background(), "X", "transcribe")
	m.RecordWrite(context.Background(), "summary", 1)
}
