package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/audiodigest/errors"
	"github.com/kbukum/audiodigest/llm"
	"github.com/kbukum/audiodigest/logger"
	"github.com/kbukum/audiodigest/observability"
	"github.com/kbukum/audiodigest/provider"
	"github.com/kbukum/audiodigest/speech"
	"github.com/kbukum/audiodigest/transcription"
)

// Pipeline orchestrates the stages for one input file at a time.
type Pipeline struct {
	cfg         Config
	transcriber transcription.Provider
	summarizer  llm.Provider
	synthesizer speech.Provider
	log         *logger.Logger
	metrics     *observability.Metrics
	now         func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records stage, error and output metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithClock overrides the clock used to stamp jobs.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline. synthesizer may be nil, in which case the speech
// stage is skipped even when cfg.Synthesize is set. Each provider is wrapped
// with logging, metrics and tracing middleware.
func New(cfg Config, transcriber transcription.Provider, summarizer llm.Provider, synthesizer speech.Provider, log *logger.Logger, opts ...Option) *Pipeline {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	p := &Pipeline{cfg: cfg, log: log.WithComponent("pipeline"), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}

	p.transcriber = wrap(p, StageTranscribe, transcriber)
	p.summarizer = wrap(p, StageSummarize, summarizer)
	if synthesizer != nil {
		p.synthesizer = wrap(p, StageSynthesize, synthesizer)
	}
	return p
}

func wrap[I, O any](p *Pipeline, stage string, inner provider.RequestResponse[I, O]) provider.RequestResponse[I, O] {
	return provider.Chain(
		provider.WithLogging[I, O](p.log, stage),
		provider.WithMetrics[I, O](p.metrics, stage),
		provider.WithTracing[I, O](stage),
	)(inner)
}

// Run processes the file at path. The returned Result is never nil; on error
// its State is StateFailed and it lists the files written before the failure.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	res := &Result{State: StateFailed}

	job, err := NewJob(path, p.now())
	if err != nil {
		return res, p.fail(ctx, res, "", err)
	}
	res.Job = job

	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	defer span.End()
	observability.SetSpanAttributes(ctx,
		attribute.String(observability.AttrJobID, job.ID),
		attribute.String(observability.AttrInputPath, path),
	)
	log := p.log.WithContext(ctx).WithFields(map[string]interface{}{
		logger.FieldJobID: job.ID,
		logger.FieldPath:  path,
	})

	if info, err := os.Stat(path); err != nil {
		return res, p.fail(ctx, res, "", errors.InputNotFound(path, err))
	} else if info.IsDir() {
		return res, p.fail(ctx, res, "", errors.InputNotFound(path, fmt.Errorf("%s is a directory", path)))
	}
	p.transition(log, res, StateValidated)

	// transcribe
	log.Info("Transcription in progress...")
	tr, err := p.transcriber.Execute(ctx, transcription.Request{AudioPath: path, Language: p.cfg.Language})
	text, err := stageText(tr, err, func(r *transcription.Response) string { return r.Text })
	if err != nil {
		return res, p.fail(ctx, res, StageTranscribe, p.stageErr(ctx, errors.TranscriptionFailed, err))
	}
	log.Info("Transcription complete")
	log.Debug(text)

	res.TranscriptionPath, err = p.write(ctx, log, SuffixTranscription, p.cfg.TranscriptionDir, job.OutputFilename(SuffixTranscription, "txt"), []byte(text))
	if err != nil {
		return res, p.fail(ctx, res, StageTranscribe, err)
	}
	p.transition(log, res, StateTranscribed)

	// summarize
	log.Info("Summarization in progress...")
	cr, err := p.summarizer.Execute(ctx, llm.CompletionRequest{
		SystemPrompt: p.cfg.SystemPrompt,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: RenderPrompt(p.cfg.PromptTemplate, text)}},
	})
	summary, err := stageText(cr, err, func(r *llm.CompletionResponse) string { return r.Content })
	if err != nil {
		return res, p.fail(ctx, res, StageSummarize, p.stageErr(ctx, errors.SummarizationFailed, err))
	}
	summary = strings.TrimSpace(summary)
	log.Info("Summarization complete")
	log.Debug(summary)

	res.SummaryPath, err = p.write(ctx, log, SuffixSummary, p.cfg.SummaryDir, job.OutputFilename(SuffixSummary, "txt"), []byte(summary))
	if err != nil {
		return res, p.fail(ctx, res, StageSummarize, err)
	}
	p.transition(log, res, StateSummarized)

	if p.cfg.Synthesize && p.synthesizer != nil {
		log.Info("Synthesis in progress...")
		audio, err := p.synthesizer.Execute(ctx, speech.Request{Text: summary})
		if err == nil && (audio == nil || len(audio.Audio) == 0) {
			err = errors.ErrEmptyResult
		}
		if err != nil {
			return res, p.fail(ctx, res, StageSynthesize, p.stageErr(ctx, errors.SynthesisFailed, err))
		}
		log.Info("Synthesis complete")

		res.AudioPath, err = p.write(ctx, log, "audio", p.cfg.SummaryDir, job.OutputFilename(SuffixSummary, audio.Extension()), audio.Audio)
		if err != nil {
			return res, p.fail(ctx, res, StageSynthesize, err)
		}
		p.transition(log, res, StateSynthesized)
	}

	p.transition(log, res, StateDone)
	return res, nil
}

// stageText extracts the text of a stage response, treating a nil or
// whitespace-only result as ErrEmptyResult.
func stageText[R any](resp *R, err error, text func(*R) string) (string, error) {
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errors.ErrEmptyResult
	}
	s := text(resp)
	if strings.TrimSpace(s) == "" {
		return "", errors.ErrEmptyResult
	}
	return s, nil
}

// stageErr wraps a provider failure, reporting cancellation as an interruption.
func (p *Pipeline) stageErr(ctx context.Context, wrap func(error) *errors.AppError, err error) error {
	if stderrors.Is(ctx.Err(), context.Canceled) {
		return errors.Interrupted(err)
	}
	return wrap(err)
}

func (p *Pipeline) write(ctx context.Context, log *logger.Logger, kind, dir, name string, data []byte) (string, error) {
	path, err := writeOutput(p.cfg.OutputDir, dir, name, data)
	if err != nil {
		return "", err
	}
	p.metrics.RecordWrite(ctx, kind, len(data))
	observability.SetSpanAttributes(ctx, attribute.String(observability.AttrOutputPath, path))
	log.Info(fmt.Sprintf("Content saved to %s", path), map[string]interface{}{logger.FieldBytes: len(data)})
	return path, nil
}

func (p *Pipeline) transition(log *logger.Logger, res *Result, state State) {
	res.State = state
	log.Debug("state changed", map[string]interface{}{logger.FieldState: string(state)})
}

func (p *Pipeline) fail(ctx context.Context, res *Result, stage string, err error) error {
	res.State = StateFailed
	code := string(errors.ErrCodeInternal)
	if appErr, ok := errors.AsAppError(err); ok {
		code = string(appErr.Code)
	}
	p.metrics.RecordError(ctx, code, stage)
	observability.SetSpanError(ctx, err)
	p.log.WithContext(ctx).Error(err.Error(), map[string]interface{}{
		logger.FieldStage: stage,
		logger.FieldState: string(res.State),
		logger.FieldJobID: res.Job.ID,
	})
	return err
}
