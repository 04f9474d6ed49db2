package provider

import (
	"context"
	"time"

	"github.com/kbukum/audiodigest/logger"
)

// WithLogging returns a Middleware that logs each Execute call with the
// stage, provider name and duration.
func WithLogging[I, O any](log *logger.Logger, stage string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &loggingRR[I, O]{inner: inner, log: log, stage: stage}
	}
}

type loggingRR[I, O any] struct {
	inner RequestResponse[I, O]
	log   *logger.Logger
	stage string
}

func (l *loggingRR[I, O]) Name() string                         { return l.inner.Name() }
func (l *loggingRR[I, O]) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := l.inner.Execute(ctx, input)

	fields := logger.DurationFields("execute", time.Since(start))
	fields[logger.FieldStage] = l.stage
	fields[logger.FieldProvider] = l.inner.Name()

	log := l.log.WithContext(ctx)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		log.Error("provider call failed", fields)
	} else {
		log.Debug("provider call ok", fields)
	}
	return output, err
}
