// Package llm defines the text-completion stage contract used for
// summarization, with backends in sub-packages.
//
// # Backends
//
//   - llm/openai: OpenAI chat completions over the package httpclient
//   - llm/gemini: Google Gemini through google.golang.org/genai
//
// # Usage
//
//	p, err := openai.NewProvider(openai.Config{APIKey: key, Defaults: llm.Config{Model: "gpt-4", MaxTokens: 800}})
//	resp, err := p.Execute(ctx, llm.CompletionRequest{
//	    SystemPrompt: "You are an assistant that summarizes texts.",
//	    Messages:     []llm.Message{{Role: llm.RoleUser, Content: prompt}},
//	})
package llm
