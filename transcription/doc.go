// Package transcription defines the speech-to-text stage contract and the
// request/response types shared by its backends.
//
// # Backends
//
//   - transcription/openai: OpenAI audio transcriptions endpoint (whisper-1)
//
// # Usage
//
//	p := openai.NewProvider(openai.Config{APIKey: key})
//	resp, err := p.Execute(ctx, transcription.Request{AudioPath: "demo.wav"})
package transcription
