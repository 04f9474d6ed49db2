package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/audiodigest/httpclient"
	"github.com/kbukum/audiodigest/resilience"
	"github.com/kbukum/audiodigest/speech"
)

const (
	// ProviderName is the name reported by the OpenAI speech provider.
	ProviderName = "openai-tts"

	// DefaultBaseURL is the public OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// Defaults applied when Config leaves them empty.
	DefaultModel  = "tts-1"
	DefaultVoice  = "alloy"
	DefaultFormat = "mp3"

	speechPath = "/audio/speech"
)

// Config holds configuration for the OpenAI speech provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
	Format  string
	Timeout time.Duration
	Retry   *resilience.RetryConfig
}

// Provider implements speech.Provider against the OpenAI audio speech endpoint.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var _ speech.Provider = (*Provider)(nil)

// NewProvider creates a new OpenAI speech provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
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
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Execute synthesizes req.Text and returns the raw audio body.
func (p *Provider) Execute(ctx context.Context, req speech.Request) (*speech.Response, error) {
	body := speechRequest{
		Model:          p.cfg.Model,
		Input:          req.Text,
		Voice:          p.cfg.Voice,
		ResponseFormat: p.cfg.Format,
	}
	if req.Model != "" {
		body.Model = req.Model
	}
	if req.Voice != "" {
		body.Voice = req.Voice
	}
	if req.Format != "" {
		body.ResponseFormat = req.Format
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    speechPath,
		Headers: map[string]string{"Accept": "audio/*"},
		Body:    body,
	})
	if err != nil {
		return nil, err
	}
	return &speech.Response{Audio: resp.Body, Format: body.ResponseFormat}, nil
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}
