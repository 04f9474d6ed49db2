package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/audiodigest/httpclient"
	"github.com/kbukum/audiodigest/llm"
	"github.com/kbukum/audiodigest/resilience"
)

const (
	// ProviderName is the name reported by the OpenAI chat provider.
	ProviderName = "openai-chat"

	// DefaultBaseURL is the public OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is used when neither the request nor the defaults name one.
	DefaultModel = "gpt-4"

	chatPath = "/chat/completions"
)

// ErrNoChoices is returned when the API answers without any choice.
var ErrNoChoices = errors.New("openai: response contained no choices")

// Config holds configuration for the OpenAI chat provider.
type Config struct {
	APIKey   string
	BaseURL  string
	Defaults llm.Config
	Timeout  time.Duration
	Retry    *resilience.RetryConfig
}

// Provider implements llm.Provider against the chat completions endpoint.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var _ llm.Provider = (*Provider)(nil)

// NewProvider creates a new OpenAI chat provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Defaults.Model == "" {
		cfg.Defaults.Model = DefaultModel
	}
	httpCfg := httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.APIKey),
	}
	if cfg.Retry != nil {
		httpCfg.Retry = httpclient.RetryConfig(*cfg.Retry)
	}
	client, err := httpclient.New(httpCfg)
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Execute sends a chat completion request and returns the first choice.
func (p *Provider) Execute(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	req = p.cfg.Defaults.Apply(req)

	body := chatRequest{
		Model:       req.Model,
		Messages:    llm.ChatMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	resp, err := httpclient.DoJSON[chatResponse](ctx, p.client, httpclient.Request{
		Method: http.MethodPost,
		Path:   chatPath,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return &llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// --- wire types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message llm.Message `json:"message"`
	} `json:"choices"`
	Usage llm.Usage `json:"usage"`
}
