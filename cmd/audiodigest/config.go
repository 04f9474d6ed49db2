package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/audiodigest/config"
	"github.com/kbukum/audiodigest/errors"
	"github.com/kbukum/audiodigest/observability"
	"github.com/kbukum/audiodigest/pipeline"
	"github.com/kbukum/audiodigest/resilience"
	"github.com/kbukum/audiodigest/validation"
)

const serviceName = "audiodigest"

// Summarizer backends.
const (
	SummarizerOpenAI = "openai"
	SummarizerGemini = "gemini"
)

// Config is the full audiodigest configuration. Every key can also be set
// through the environment (OPENAI_API_KEY, OUTPUT_DIR, SPEECH_ENABLED, ...).
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	OpenAI        OpenAIConfig         `yaml:"openai" mapstructure:"openai"`
	Gemini        GeminiConfig         `yaml:"gemini" mapstructure:"gemini"`
	Transcription TranscriptionConfig  `yaml:"transcription" mapstructure:"transcription"`
	Summarizer    SummarizerConfig     `yaml:"summarizer" mapstructure:"summarizer"`
	Speech        SpeechConfig         `yaml:"speech" mapstructure:"speech"`
	Output        pipeline.Config      `yaml:"output" mapstructure:"output"`
	HTTP          HTTPConfig           `yaml:"http" mapstructure:"http"`
	Telemetry     observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// OpenAIConfig holds the credential shared by every OpenAI stage.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

// GeminiConfig holds the Gemini credential, used when summarizer.provider is gemini.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

type TranscriptionConfig struct {
	Model    string `yaml:"model" mapstructure:"model"`
	Language string `yaml:"language" mapstructure:"language"`
}

type SummarizerConfig struct {
	Provider     string  `yaml:"provider" mapstructure:"provider" validate:"oneof=openai gemini"`
	Model        string  `yaml:"model" mapstructure:"model"`
	MaxTokens    int     `yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=1"`
	Temperature  float64 `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`
	SystemPrompt string  `yaml:"system_prompt" mapstructure:"system_prompt"`
	// Prompt must contain one %s, replaced by the transcription. It is not a
	// format string.
	Prompt string `yaml:"prompt" mapstructure:"prompt"`
}

type SpeechConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Model   string `yaml:"model" mapstructure:"model"`
	Voice   string `yaml:"voice" mapstructure:"voice"`
	Format  string `yaml:"format" mapstructure:"format" validate:"oneof=mp3 opus aac flac wav pcm"`
}

type HTTPConfig struct {
	Timeout time.Duration          `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	Retry   resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// RetryConfig returns nil when only one attempt is configured.
func (c HTTPConfig) RetryConfig() *resilience.RetryConfig {
	if c.Retry.MaxAttempts <= 1 {
		return nil
	}
	r := c.Retry
	return &r
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = SummarizerOpenAI
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = "gpt-4"
		if c.Summarizer.Provider == SummarizerGemini {
			c.Summarizer.Model = "gemini-2.5-flash"
		}
	}
	if c.Summarizer.MaxTokens == 0 {
		c.Summarizer.MaxTokens = 800
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-1"
	}
	if c.Speech.Model == "" {
		c.Speech.Model = "tts-1"
	}
	if c.Speech.Voice == "" {
		c.Speech.Voice = "alloy"
	}
	if c.Speech.Format == "" {
		c.Speech.Format = "mp3"
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 120 * time.Second
	}
	c.HTTP.Retry.ApplyDefaults()
	c.Output.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks field constraints, then that the credentials of the
// selected backends are present. It returns an *errors.AppError.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return errors.InvalidConfig(err.Error())
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return errors.InvalidConfig(err.Error())
	}

	v := validation.New()
	v.Custom(!filepath.IsAbs(c.Output.TranscriptionDir), "output.transcription_dir", "must be relative to output.dir")
	v.Custom(!filepath.IsAbs(c.Output.SummaryDir), "output.summary_dir", "must be relative to output.dir")
	v.Custom(c.Summarizer.Prompt == "" || strings.Count(c.Summarizer.Prompt, pipeline.PromptPlaceholder) == 1,
		"summarizer.prompt", "must contain exactly one "+pipeline.PromptPlaceholder)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}

	// Transcription always goes through OpenAI.
	if c.OpenAI.APIKey == "" {
		return errors.MissingCredential("OPENAI_API_KEY")
	}
	if c.Summarizer.Provider == SummarizerGemini && c.Gemini.APIKey == "" {
		return errors.MissingCredential("GEMINI_API_KEY")
	}
	return nil
}

// flagKeys maps command-line flags to the config keys they override.
var flagKeys = map[string]string{
	"output-dir": "output.dir",
	"synthesize": "speech.enabled",
	"summarizer": "summarizer.provider",
	"log-level":  "logging.level",
}

// loadConfig reads file, .env and environment, then overlays flags that
// were set explicitly.
func loadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	opts := []config.LoaderOption{config.WithFlags(flags, flagKeys)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		opts = append(opts, config.WithHomeDir(home))
	}

	cfg := &Config{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, errors.InvalidConfig(err.Error()).WithCause(err)
	}
	return cfg, nil
}
