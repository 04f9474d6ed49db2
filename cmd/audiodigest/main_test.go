package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/audiodigest/errors"
)

// isolate runs the test in an empty working directory with no home config
// and no inherited credentials.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LOGGING_OUTPUT", "stderr")
	return dir
}

func fakeOpenAI(t *testing.T, failTranscription bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/audio/transcriptions":
			if failTranscription {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"text":"hello world"}`))
		case "/chat/completions":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "Greeting."}}},
			})
		case "/audio/speech":
			_, _ = w.Write([]byte("ID3-audio"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeAudio(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no arguments", nil, errors.ExitUsage},
		{"two arguments", []string{"a.wav", "b.wav"}, errors.ExitUsage},
		{"unknown flag", []string{"--nope", "a.wav"}, errors.ExitUsage},
		{"help", []string{"--help"}, errors.ExitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.want, stderr)
			}
			if !strings.Contains(stderr, "Usage: audiodigest") {
				t.Errorf("expected usage text, got %q", stderr)
			}
		})
	}
}

func TestRun_UnknownFlagReportsError(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "--nope", "a.wav")
	if code != errors.ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, errors.ExitUsage)
	}
	if !strings.Contains(stderr, "unknown flag: --nope") {
		t.Errorf("expected the parse error on stderr, got %q", stderr)
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	if code != errors.ExitOK || !strings.HasPrefix(stdout, "audiodigest ") {
		t.Errorf("code=%d stdout=%q", code, stdout)
	}
}

func TestRun_MissingCredentialBeforeFileIO(t *testing.T) {
	dir := isolate(t)
	in := writeAudio(t, dir, "demo.wav")
	out := filepath.Join(dir, "out")

	code, _, stderr := runCLI(t, "--output-dir", out, in)
	if code != errors.ExitConfig {
		t.Fatalf("exit code = %d, want %d (stderr: %s)", code, errors.ExitConfig, stderr)
	}
	if !strings.Contains(stderr, "OPENAI_API_KEY") {
		t.Errorf("stderr should name the variable: %q", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output directory should not exist, stat err = %v", err)
	}
}

func TestRun_MissingGeminiKey(t *testing.T) {
	dir := isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	code, _, stderr := runCLI(t, "--summarizer", "gemini", writeAudio(t, dir, "demo.wav"))
	if code != errors.ExitConfig || !strings.Contains(stderr, "GEMINI_API_KEY") {
		t.Errorf("code=%d stderr=%q", code, stderr)
	}
}

func TestRun_InvalidFlagValue(t *testing.T) {
	dir := isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	code, _, stderr := runCLI(t, "--summarizer", "claude", writeAudio(t, dir, "demo.wav"))
	if code != errors.ExitConfig || !strings.Contains(stderr, "summarizer.provider") {
		t.Errorf("code=%d stderr=%q", code, stderr)
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	dir := isolate(t)
	code, _, _ := runCLI(t, "--config", filepath.Join(dir, "nope.yml"), "demo.wav")
	if code != errors.ExitConfig {
		t.Errorf("exit code = %d", code)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	dir := isolate(t)
	srv := fakeOpenAI(t, false)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", srv.URL)
	in := writeAudio(t, dir, "demo.wav")
	out := filepath.Join(dir, "out")

	code, _, stderr := runCLI(t, "--output-dir", out, "--synthesize", in)
	if code != errors.ExitOK {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr)
	}

	want := map[string]string{
		"demo_transcription_*.txt": "hello world",
		"demo_summary_*.txt":       "Greeting.",
		"demo_summary_*.mp3":       "ID3-audio",
	}
	for pattern, content := range want {
		matches, _ := filepath.Glob(filepath.Join(out, pattern))
		if len(matches) != 1 {
			t.Errorf("%s: found %v", pattern, matches)
			continue
		}
		data, _ := os.ReadFile(matches[0])
		if string(data) != content {
			t.Errorf("%s = %q, want %q", matches[0], data, content)
		}
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := isolate(t)
	srv := fakeOpenAI(t, false)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	yml := "openai:\n  base_url: " + srv.URL + "\noutput:\n  dir: results\n  transcription_dir: audio_transcription\n  summary_dir: audio_summarize\n"
	if err := os.WriteFile(filepath.Join(dir, "audiodigest.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, writeAudio(t, dir, "talk.mp3"))
	if code != errors.ExitOK {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr)
	}
	for _, pattern := range []string{
		"results/audio_transcription/talk_transcription_*.txt",
		"results/audio_summarize/talk_summary_*.txt",
	} {
		if matches, _ := filepath.Glob(filepath.Join(dir, pattern)); len(matches) != 1 {
			t.Errorf("%s: found %v", pattern, matches)
		}
	}
}

func TestRun_PipelineFailures(t *testing.T) {
	tests := []struct {
		name string
		file string
		fail bool
		want int
	}{
		{"unsupported format", "notes.txt", false, errors.ExitInput},
		{"transcription error", "demo.wav", true, errors.ExitStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			srv := fakeOpenAI(t, tt.fail)
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv("OPENAI_BASE_URL", srv.URL)
			out := filepath.Join(dir, "out")

			code, _, _ := runCLI(t, "-o", out, writeAudio(t, dir, tt.file))
			if code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
			if entries, _ := os.ReadDir(out); len(entries) != 0 {
				t.Errorf("expected no outputs, got %d", len(entries))
			}
		})
	}
}

func TestRun_InputNotFound(t *testing.T) {
	dir := isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	code, _, _ := runCLI(t, filepath.Join(dir, "missing.wav"))
	if code != errors.ExitInput {
		t.Errorf("exit code = %d, want %d", code, errors.ExitInput)
	}
}
