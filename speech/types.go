package speech

import (
	"strings"

	"github.com/kbukum/audiodigest/provider"
)

// Provider is the interface that speech synthesis backends must implement.
type Provider = provider.RequestResponse[Request, *Response]

// Request holds parameters for a synthesis call.
type Request struct {
	// Text is the input to speak.
	Text string `json:"text"`
	// Voice overrides the backend's default voice.
	Voice string `json:"voice,omitempty"`
	// Model overrides the backend's default model.
	Model string `json:"model,omitempty"`
	// Format overrides the backend's default audio format (e.g. "mp3", "wav").
	Format string `json:"format,omitempty"`
}

// Response holds the synthesized audio.
type Response struct {
	// Audio is the encoded audio payload.
	Audio []byte `json:"-"`
	// Format is the audio format of Audio.
	Format string `json:"format"`
}

// Extension returns the file extension for the response format, without a dot.
func (r *Response) Extension() string {
	if r.Format == "" {
		return "mp3"
	}
	return strings.ToLower(r.Format)
}
