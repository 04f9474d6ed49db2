package provider

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/audiodigest/observability"
)

// WithTracing returns a Middleware that wraps each Execute call in a span
// named "stage.{stage}".
func WithTracing[I, O any](stage string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{inner: inner, stage: stage}
	}
}

type tracingRR[I, O any] struct {
	inner RequestResponse[I, O]
	stage string
}

func (t *tracingRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, span := observability.StartSpan(ctx, "stage."+t.stage)
	defer span.End()

	observability.SetSpanAttributes(ctx,
		attribute.String(observability.AttrStage, t.stage),
		attribute.String(observability.AttrProvider, t.inner.Name()),
	)

	output, err := t.inner.Execute(ctx, input)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return output, err
}
