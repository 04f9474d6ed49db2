package provider

import (
	"context"
	"time"

	"github.com/kbukum/audiodigest/observability"
)

// WithMetrics returns a Middleware that records execution count and
// duration for the stage. A nil metrics value records nothing.
func WithMetrics[I, O any](metrics *observability.Metrics, stage string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics, stage: stage}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.Metrics
	stage   string
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.metrics.RecordStage(ctx, m.stage, m.inner.Name(), status, time.Since(start))
	return output, err
}
