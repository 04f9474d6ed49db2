package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/audiodigest/httpclient"
	"github.com/kbukum/audiodigest/speech"
)

func TestExecute_ReturnsRawAudio(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x90, 0x00, 0x01}
	var (
		got     speechRequest
		gotAuth string
		gotPath string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	p, err := NewProvider(Config{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Execute(context.Background(), speech.Request{Text: "Greeting."})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !bytes.Equal(resp.Audio, audio) {
		t.Errorf("audio = %v, want %v", resp.Audio, audio)
	}
	if resp.Extension() != "mp3" {
		t.Errorf("extension = %q", resp.Extension())
	}
	if gotAuth != "Bearer sk-test" || gotPath != "/audio/speech" {
		t.Errorf("auth=%q path=%q", gotAuth, gotPath)
	}
	want := speechRequest{Model: DefaultModel, Input: "Greeting.", Voice: DefaultVoice, ResponseFormat: DefaultFormat}
	if got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
}

func TestExecute_RequestOverrides(t *testing.T) {
	var got speechRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte("RIFF"))
	}))
	defer srv.Close()

	p, _ := NewProvider(Config{APIKey: "k", BaseURL: srv.URL, Format: "opus"})
	resp, err := p.Execute(context.Background(), speech.Request{Text: "x", Voice: "nova", Format: "wav"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Voice != "nova" || got.ResponseFormat != "wav" || resp.Format != "wav" {
		t.Errorf("overrides not applied: request=%+v response format=%q", got, resp.Format)
	}
}

func TestExecute_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p, _ := NewProvider(Config{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Execute(context.Background(), speech.Request{Text: "x"}); !httpclient.IsRetryable(err) {
		t.Fatalf("expected retryable server error, got %v", err)
	}
}
