// Package observability wires OpenTelemetry tracing and metrics for a run.
//
// Both signals are off by default. When enabled, spans go to stdout or an
// OTLP/HTTP collector and stage metrics go to an OTLP/HTTP collector.
//
//	shutdown, err := observability.Setup(ctx, cfg.Telemetry, "audiodigest", version.Version)
//	defer shutdown(context.Background())
//
//	ctx, span := observability.StartSpan(ctx, "pipeline.run")
//	defer span.End()
package observability
