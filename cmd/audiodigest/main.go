// Command audiodigest transcribes an audio file, summarizes the transcript
// and optionally reads the summary back as speech.
//
//	audiodigest [flags] <path-to-audio-file>
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/audiodigest/bootstrap"
	"github.com/kbukum/audiodigest/errors"
	"github.com/kbukum/audiodigest/httpclient"
	"github.com/kbukum/audiodigest/observability"
	"github.com/kbukum/audiodigest/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configFile := flags.StringP("config", "c", "", "path to a YAML config file")
	flags.StringP("output-dir", "o", "", `directory for output files (default ".")`)
	flags.Bool("synthesize", false, "synthesize the summary to speech")
	flags.String("summarizer", "", "summarization backend: openai or gemini")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	showVersion := flags.BoolP("version", "v", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <path-to-audio-file>\n\nFlags:\n", serviceName)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return errors.ExitOK
		}
		fmt.Fprintln(stderr, err)
		flags.Usage()
		return errors.ExitUsage
	}
	if *showVersion {
		fmt.Fprintln(stdout, version.Get())
		return errors.ExitOK
	}
	if flags.NArg() != 1 {
		err := errors.InvalidUsage(fmt.Sprintf("expected exactly one audio file, got %d arguments", flags.NArg()))
		fmt.Fprintln(stderr, err.Message)
		flags.Usage()
		return errors.ExitCode(err)
	}

	cfg, err := loadConfig(*configFile, flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return errors.ExitCode(err)
	}
	app, err := bootstrap.NewApp(cfg, bootstrap.WithVersion(version.Get().Short()))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return errors.ExitCode(err)
	}

	return errors.ExitCode(execute(ctx, app, flags.Arg(0)))
}

// execute wires telemetry around the pipeline task.
func execute(ctx context.Context, app *bootstrap.App[*Config], path string) error {
	cfg := app.Cfg

	var shutdownTelemetry observability.ShutdownFunc
	app.OnStart(func(ctx context.Context) error {
		var err error
		shutdownTelemetry, err = observability.Setup(ctx, cfg.Telemetry, app.Name, app.Version, cfg.Environment, os.Stderr)
		return err
	})
	app.OnStop(func(ctx context.Context) error {
		if shutdownTelemetry == nil {
			return nil
		}
		return shutdownTelemetry(ctx)
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		p, err := newPipeline(ctx, cfg, app.Logger)
		if err != nil {
			app.Logger.WithError(err).Error("Failed to build pipeline")
			return err
		}

		res, err := p.Run(ctx, path)
		outputs := []struct{ name, path string }{
			{"transcription", res.TranscriptionPath},
			{"summary", res.SummaryPath},
			{"audio", res.AudioPath},
		}
		for _, o := range outputs {
			if o.path != "" {
				app.Summary.Track(o.name, o.path, true)
			}
		}
		if err != nil {
			app.Summary.Track(string(res.State), err.Error(), false)
			if hint := failureHint(err); hint != "" {
				app.Logger.Warn(hint)
			}
		}
		return err
	})
}

// failureHint suggests a remedy for remote failures the user can act on.
func failureHint(err error) string {
	switch {
	case httpclient.IsAuth(err):
		return "The API rejected the credential; check OPENAI_API_KEY"
	case httpclient.IsRateLimit(err):
		return "The API is rate limiting requests; retry later or raise http.retry.max_attempts"
	case httpclient.IsTimeout(err):
		return "The request timed out; raise http.timeout for long recordings"
	}
	return ""
}
