package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kbukum/audiodigest/httpclient"
	"github.com/kbukum/audiodigest/resilience"
	"github.com/kbukum/audiodigest/transcription"
)

const (
	// ProviderName is the name reported by the OpenAI transcription provider.
	ProviderName = "openai-whisper"

	// DefaultBaseURL is the public OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is the transcription model used when none is configured.
	DefaultModel = "whisper-1"

	transcriptionsPath = "/audio/transcriptions"
)

// Config holds configuration for the OpenAI transcription provider.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Timeout  time.Duration
	Retry    *resilience.RetryConfig
}

// Provider implements transcription.Provider against the OpenAI audio API.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates a new OpenAI transcription provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
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
		return nil, fmt.Errorf("openai transcription: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Execute uploads the audio file and returns its transcription.
func (p *Provider) Execute(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	audio, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	fields := map[string]string{
		"model":           model,
		"response_format": "json",
	}
	if lang != "" {
		fields["language"] = lang
	}

	result, err := httpclient.DoJSON[transcriptionResponse](ctx, p.client, httpclient.Request{
		Method: http.MethodPost,
		Path:   transcriptionsPath,
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName: "file",
				FileName:  filepath.Base(req.AudioPath),
				Data:      audio,
			}},
		},
	})
	if err != nil {
		return nil, err
	}

	return &transcription.Response{
		Text:     result.Text,
		Language: result.Language,
		Duration: result.Duration,
	}, nil
}

// transcriptionResponse is the json (and verbose_json) body of the endpoint.
type transcriptionResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}
