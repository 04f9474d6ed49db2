package pipeline

import "strings"

const (
	// DefaultSystemPrompt is the instruction given to the summarizer.
	DefaultSystemPrompt = "You are an assistant that summarizes texts."
	// DefaultPromptTemplate wraps the transcription; PromptPlaceholder is replaced by the text.
	DefaultPromptTemplate = "Summarize the following text: %s"
	// PromptPlaceholder marks where the transcription goes in a prompt template.
	PromptPlaceholder = "%s"
)

// RenderPrompt substitutes text for the first PromptPlaceholder in template.
// The template is not a format string: any other % is sent as written.
func RenderPrompt(template, text string) string {
	return strings.Replace(template, PromptPlaceholder, text, 1)
}

// Config controls where a run writes and which stages it runs.
type Config struct {
	// OutputDir is the root for all output files. Defaults to ".".
	OutputDir string `yaml:"dir" mapstructure:"dir"`
	// TranscriptionDir is joined to OutputDir for transcription files.
	TranscriptionDir string `yaml:"transcription_dir" mapstructure:"transcription_dir"`
	// SummaryDir is joined to OutputDir for summary text and audio files.
	SummaryDir string `yaml:"summary_dir" mapstructure:"summary_dir"`

	// Synthesize enables the speech stage.
	Synthesize bool `yaml:"-" mapstructure:"-"`
	// Language is passed to the transcriber when set.
	Language string `yaml:"-" mapstructure:"-"`
	// SystemPrompt and PromptTemplate build the summarization request.
	SystemPrompt   string `yaml:"-" mapstructure:"-"`
	PromptTemplate string `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.PromptTemplate == "" {
		c.PromptTemplate = DefaultPromptTemplate
	}
}
