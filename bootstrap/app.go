package bootstrap

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/audiodigest/logger"
)

// App owns the lifecycle of a finite task. C is the config type.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	Summary *Summary

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// NewApp applies defaults to cfg, validates it and initializes the logger.
// Validation errors are returned unwrapped so their codes survive.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         o.version,
		Cfg:             cfg,
		Logger:          o.logger,
		gracefulTimeout: 10 * time.Second,
	}
	if app.Version == "" {
		app.Version = "dev"
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if app.Logger == nil {
		app.Logger = logger.New(&base.Logging, base.Name)
	}
	app.Summary = NewSummary(app.Name, app.Version)
	return app, nil
}

// RunTask runs OnStart hooks, then task under a context that is cancelled on
// SIGINT or SIGTERM, then OnStop hooks. The task error takes precedence over
// a stop error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	start := time.Now()
	a.Logger.Debug("Starting", map[string]interface{}{"name": a.Name, "version": a.Version})

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart: %w", err)
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	taskErr := task(taskCtx)
	if taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Warn("Received signal, task cancelled")
	}
	stop()

	a.Summary.SetDuration(time.Since(start))
	a.Summary.Display(a.Logger)

	if stopErr := a.shutdown(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// shutdown runs OnStop hooks within the graceful timeout on a fresh context,
// so hooks still run after the task context was cancelled.
func (a *App[C]) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := runStopHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.ErrorFields("shutdown", err))
		return err
	}
	return nil
}
