package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/audiodigest/httpclient"
	"github.com/kbukum/audiodigest/transcription"
)

func writeAudio(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute_SendsMultipartUpload(t *testing.T) {
	var (
		gotAuth, gotPath, gotModel, gotFormat, gotLang, gotFileName string
		gotAudio                                                    []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		gotLang = r.FormValue("language")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFileName = hdr.Filename
			gotAudio, _ = io.ReadAll(f)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "hello world"})
	}))
	defer srv.Close()

	p, err := NewProvider(Config{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	path := writeAudio(t, "demo.wav", []byte("RIFF-audio"))

	resp, err := p.Execute(context.Background(), transcription.Request{AudioPath: path, Language: "en"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if resp.Text != "hello world" {
		t.Errorf("text = %q", resp.Text)
	}

	checks := map[string][2]string{
		"auth":     {gotAuth, "Bearer sk-test"},
		"path":     {gotPath, "/audio/transcriptions"},
		"model":    {gotModel, DefaultModel},
		"format":   {gotFormat, "json"},
		"language": {gotLang, "en"},
		"filename": {gotFileName, "demo.wav"},
		"audio":    {string(gotAudio), "RIFF-audio"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}
}

func TestExecute_OmitsEmptyLanguage(t *testing.T) {
	var hasLang bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		_, hasLang = r.MultipartForm.Value["language"]
		_, _ = w.Write([]byte(`{"text":"ok"}`))
	}))
	defer srv.Close()

	p, _ := NewProvider(Config{APIKey: "k", BaseURL: srv.URL, Model: "whisper-2"})
	if _, err := p.Execute(context.Background(), transcription.Request{AudioPath: writeAudio(t, "a.mp3", []byte("x"))}); err != nil {
		t.Fatal(err)
	}
	if hasLang {
		t.Error("expected no language field")
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, httpclient.IsAuth},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, httpclient.IsRateLimit},
		{"server error", http.StatusInternalServerError, `oops`, httpclient.IsRetryable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p, _ := NewProvider(Config{APIKey: "k", BaseURL: srv.URL})
			_, err := p.Execute(context.Background(), transcription.Request{AudioPath: writeAudio(t, "a.wav", []byte("x"))})
			if err == nil || !tt.check(err) {
				t.Errorf("unexpected error classification: %v", err)
			}
		})
	}
}

func TestExecute_MissingFile(t *testing.T) {
	p, _ := NewProvider(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	if _, err := p.Execute(context.Background(), transcription.Request{AudioPath: filepath.Join(t.TempDir(), "nope.wav")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestIsAvailable(t *testing.T) {
	with, _ := NewProvider(Config{APIKey: "k"})
	without, _ := NewProvider(Config{})
	if !with.IsAvailable(context.Background()) || without.IsAvailable(context.Background()) {
		t.Error("availability should follow the API key")
	}
	if with.Name() != ProviderName {
		t.Errorf("Name() = %q", with.Name())
	}
}
