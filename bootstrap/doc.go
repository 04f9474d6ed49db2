// Package bootstrap runs a finite task with typed configuration, a logger,
// start/stop hooks and SIGINT/SIGTERM cancellation.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithVersion(version.Get().Short()))
//	app.OnStart(setupTelemetry)
//	app.OnStop(flushTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return process(ctx)
//	})
package bootstrap
