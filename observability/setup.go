package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ShutdownFunc flushes and stops the providers installed by Setup.
type ShutdownFunc func(context.Context) error

// Setup installs the providers enabled in cfg. With both signals disabled
// the global no-op providers stay in place and the returned func does nothing.
func Setup(ctx context.Context, cfg Config, serviceName, serviceVersion, environment string, traceOut io.Writer) (ShutdownFunc, error) {
	var shutdowns []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}
	if !cfg.Tracing.Enabled && !cfg.Metrics.Enabled {
		return shutdown, nil
	}

	res, err := newResource(serviceName, serviceVersion, environment)
	if err != nil {
		return shutdown, fmt.Errorf("creating resource: %w", err)
	}

	if cfg.Tracing.Enabled {
		tp, err := InitTracer(ctx, cfg.Tracing, res, traceOut)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}
	if cfg.Metrics.Enabled {
		mp, err := InitMeter(ctx, cfg.Metrics, res)
		if err != nil {
			return shutdown, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}
	return shutdown, nil
}
