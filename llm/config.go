package llm

// Config holds the request defaults a provider applies when a
// CompletionRequest leaves them unset.
type Config struct {
	// Model is the default model (e.g. "gpt-4", "gemini-2.5-flash").
	Model string `yaml:"model" mapstructure:"model"`
	// Temperature is the default sampling temperature. 0 leaves it to the backend.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	// MaxTokens is the default response limit. 0 leaves it to the backend.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// Apply returns req with zero-valued fields filled from c.
func (c Config) Apply(req CompletionRequest) CompletionRequest {
	if req.Model == "" {
		req.Model = c.Model
	}
	if req.Temperature == 0 {
		req.Temperature = c.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.MaxTokens
	}
	return req
}
