package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// InitMeter builds an OTLP/HTTP meter provider for cfg and installs it globally.
func InitMeter(ctx context.Context, cfg MeterConfig, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns the package meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics holds the instruments recorded for pipeline stages.
type Metrics struct {
	stageTotal    metric.Int64Counter
	stageDuration metric.Float64Histogram
	errorTotal    metric.Int64Counter
	bytesWritten  metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	stageTotal, err := meter.Int64Counter("audiodigest.stage.total",
		metric.WithDescription("Stage executions by stage, provider and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.total counter: %w", err)
	}
	stageDuration, err := meter.Float64Histogram("audiodigest.stage.duration",
		metric.WithDescription("Duration of stage executions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.duration histogram: %w", err)
	}
	errorTotal, err := meter.Int64Counter("audiodigest.error.total",
		metric.WithDescription("Errors by code and stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}
	bytesWritten, err := meter.Int64Counter("audiodigest.output.bytes",
		metric.WithDescription("Bytes written to output files"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating output.bytes counter: %w", err)
	}
	return &Metrics{
		stageTotal:    stageTotal,
		stageDuration: stageDuration,
		errorTotal:    errorTotal,
		bytesWritten:  bytesWritten,
	}, nil
}

// RecordStage records one stage execution.
func (m *Metrics) RecordStage(ctx context.Context, stage, provider, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("provider", provider),
	))
}

// RecordError records a failure by error code and stage.
func (m *Metrics) RecordError(ctx context.Context, code, stage string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("stage", stage),
	))
}

// RecordWrite records bytes written for an output kind.
func (m *Metrics) RecordWrite(ctx context.Context, kind string, n int) {
	if m == nil {
		return
	}
	m.bytesWritten.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}
