package transcription

import (
	"github.com/kbukum/audiodigest/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider = provider.RequestResponse[Request, *Response]

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the expected language of the audio (ISO-639-1, e.g. "en").
	Language string `json:"language,omitempty"`
	// Model overrides the backend's default model.
	Model string `json:"model,omitempty"`
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Language is the detected or specified language, when the backend reports it.
	Language string `json:"language,omitempty"`
	// Duration is the audio duration in seconds, when the backend reports it.
	Duration float64 `json:"duration,omitempty"`
}
