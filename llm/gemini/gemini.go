package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/kbukum/audiodigest/llm"
)

const (
	// ProviderName is the name reported by the Gemini provider.
	ProviderName = "gemini"

	// DefaultModel is used when neither the request nor the defaults name one.
	DefaultModel = "gemini-2.5-flash"
)

// ErrEmptyCandidates is returned when Gemini answers without text candidates.
var ErrEmptyCandidates = errors.New("gemini: response contained no candidates")

// Config holds configuration for the Gemini provider.
type Config struct {
	APIKey string
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL  string
	Defaults llm.Config
	Timeout  time.Duration
}

// Provider implements llm.Provider with the Google Gen AI SDK.
type Provider struct {
	cfg    Config
	client *genai.Client
}

var _ llm.Provider = (*Provider)(nil)

// NewProvider creates a Gemini provider. The SDK client is built once and
// reused for every call.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Defaults.Model == "" {
		cfg.Defaults.Model = DefaultModel
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		clientCfg.HTTPOptions.Timeout = &timeout
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Execute generates content for the request and concatenates the text
// parts of the first candidate.
func (p *Provider) Execute(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	req = p.cfg.Defaults.Apply(req)
	contents, genCfg := toGenerateContent(req)

	result, err := p.client.Models.GenerateContent(ctx, req.Model, contents, genCfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, ErrEmptyCandidates
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	resp := &llm.CompletionResponse{Content: text.String(), Model: req.Model}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = llm.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

// toGenerateContent maps chat messages onto Gemini contents. System
// messages become the system instruction; assistant turns use the model role.
func toGenerateContent(req llm.CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	cfg := &genai.GenerateContentConfig{}
	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))

	for _, msg := range llm.ChatMessages(req) {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)
		case llm.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	return contents, cfg
}
