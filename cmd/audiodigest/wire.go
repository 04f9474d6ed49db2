package main

import (
	"context"
	"fmt"

	"github.com/kbukum/audiodigest/errors"
	"github.com/kbukum/audiodigest/llm"
	"github.com/kbukum/audiodigest/llm/gemini"
	llmopenai "github.com/kbukum/audiodigest/llm/openai"
	"github.com/kbukum/audiodigest/logger"
	"github.com/kbukum/audiodigest/observability"
	"github.com/kbukum/audiodigest/pipeline"
	"github.com/kbukum/audiodigest/provider"
	"github.com/kbukum/audiodigest/speech"
	speechopenai "github.com/kbukum/audiodigest/speech/openai"
	transcriptionopenai "github.com/kbukum/audiodigest/transcription/openai"
)

// newPipeline builds the stage providers selected by cfg.
func newPipeline(ctx context.Context, cfg *Config, log *logger.Logger) (*pipeline.Pipeline, error) {
	retry := cfg.HTTP.RetryConfig()

	transcriber, err := transcriptionopenai.NewProvider(transcriptionopenai.Config{
		APIKey:   cfg.OpenAI.APIKey,
		BaseURL:  cfg.OpenAI.BaseURL,
		Model:    cfg.Transcription.Model,
		Language: cfg.Transcription.Language,
		Timeout:  cfg.HTTP.Timeout,
		Retry:    retry,
	})
	if err != nil {
		return nil, errors.InvalidConfig("transcription provider").WithCause(err)
	}

	summarizer, err := newSummarizer(ctx, cfg)
	if err != nil {
		return nil, errors.InvalidConfig("summarization provider").WithCause(err)
	}

	var synthesizer speech.Provider
	if cfg.Speech.Enabled {
		sp, err := speechopenai.NewProvider(speechopenai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.Speech.Model,
			Voice:   cfg.Speech.Voice,
			Format:  cfg.Speech.Format,
			Timeout: cfg.HTTP.Timeout,
			Retry:   retry,
		})
		if err != nil {
			return nil, errors.InvalidConfig("speech provider").WithCause(err)
		}
		synthesizer = sp
	}

	stages := []provider.Provider{transcriber, summarizer}
	if synthesizer != nil {
		stages = append(stages, synthesizer)
	}
	for _, sp := range stages {
		if !sp.IsAvailable(ctx) {
			return nil, errors.InvalidConfig(fmt.Sprintf("provider %s is not configured", sp.Name()))
		}
	}

	metrics, err := observability.NewMetrics(observability.Meter())
	if err != nil {
		return nil, errors.Internal(err)
	}

	out := cfg.Output
	out.Synthesize = cfg.Speech.Enabled
	out.Language = cfg.Transcription.Language
	out.SystemPrompt = cfg.Summarizer.SystemPrompt
	out.PromptTemplate = cfg.Summarizer.Prompt

	return pipeline.New(out, transcriber, summarizer, synthesizer, log, pipeline.WithMetrics(metrics)), nil
}

func newSummarizer(ctx context.Context, cfg *Config) (llm.Provider, error) {
	defaults := llm.Config{
		Model:       cfg.Summarizer.Model,
		MaxTokens:   cfg.Summarizer.MaxTokens,
		Temperature: cfg.Summarizer.Temperature,
	}
	if cfg.Summarizer.Provider == SummarizerGemini {
		return gemini.NewProvider(ctx, gemini.Config{
			APIKey:   cfg.Gemini.APIKey,
			BaseURL:  cfg.Gemini.BaseURL,
			Defaults: defaults,
			Timeout:  cfg.HTTP.Timeout,
		})
	}
	return llmopenai.NewProvider(llmopenai.Config{
		APIKey:   cfg.OpenAI.APIKey,
		BaseURL:  cfg.OpenAI.BaseURL,
		Defaults: defaults,
		Timeout:  cfg.HTTP.Timeout,
		Retry:    cfg.HTTP.RetryConfig(),
	})
}
