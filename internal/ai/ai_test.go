package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"meetscribe/internal/apperr"
	"meetscribe/internal/config"
)

// fakeChat serves /chat/completions, answering with content and recording
// the last request.
type fakeChat struct {
	mu      sync.Mutex
	content string
	status  int
	last    openai.ChatCompletionRequest
	calls   int
}

func (f *fakeChat) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if r.URL.Path != "/chat/completions" {
		http.NotFound(w, r)
		return
	}
	json.NewDecoder(r.Body).Decode(&f.last)
	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		fmt.Fprint(w, `{"error":{"message":"upstream failure","type":"server_error"}}`)
		return
	}
	resp := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content},
		}},
	}
	json.NewEncoder(w).Encode(resp)
}

func testConfig(url string) *config.Config {
	return &config.Config{
		GroqAPIKey:          "gsk_test",
		GeminiAPIKey:        "gem_test",
		GroqBaseURL:         url,
		GeminiBaseURL:       url,
		DetectModel:         "gemini-2.5-flash",
		TranslateModel:      "gemini-2.5-flash",
		SimplifyModel:       "llama-3.3-70b-versatile",
		ProviderTimeout:     5 * time.Second,
		ProviderMaxAttempts: 1,
	}
}

func newFake(t *testing.T, f *fakeChat) *config.Config {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return testConfig(srv.URL)
}

func TestDetectLanguage(t *testing.T) {
	f := &fakeChat{content: "  Spanish\n"}
	g := NewGemini(newFake(t, f), zerolog.Nop())

	label, err := g.DetectLanguage(context.Background(), "Hola, ¿cómo estás?")
	if err != nil {
		t.Fatalf("DetectLanguage() error: %v", err)
	}
	if label != "spanish" {
		t.Errorf("expected trimmed lower-case label, got %q", label)
	}
	if f.last.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected model %q", f.last.Model)
	}
	if len(f.last.Messages) != 1 || f.last.Messages[0].Role != openai.ChatMessageRoleUser {
		t.Fatalf("expected a single user message, got %+v", f.last.Messages)
	}
	if !strings.HasSuffix(f.last.Messages[0].Content, "Hola, ¿cómo estás?") {
		t.Errorf("prompt should end with the text, got %q", f.last.Messages[0].Content)
	}
}

func TestDetectLanguageKeepsVariantPhrasing(t *testing.T) {
	f := &fakeChat{content: "English (US)"}
	g := NewGemini(newFake(t, f), zerolog.Nop())

	label, err := g.DetectLanguage(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if label != "english (us)" {
		t.Errorf("label must only be trimmed and lower-cased, got %q", label)
	}
}

func TestTranslate(t *testing.T) {
	f := &fakeChat{content: "\nHello, how are you?  "}
	g := NewGemini(newFake(t, f), zerolog.Nop())

	english, err := g.Translate(context.Background(), "Hola, ¿cómo estás?")
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if english != "Hello, how are you?" {
		t.Errorf("unexpected translation %q", english)
	}
	if !strings.Contains(f.last.Messages[0].Content, "plain English") {
		t.Errorf("unexpected prompt %q", f.last.Messages[0].Content)
	}
}

func TestSimplify(t *testing.T) {
	f := &fakeChat{content: " We will ship on Friday. "}
	g := NewGroq(newFake(t, f), zerolog.Nop())

	english, err := g.Simplify(context.Background(), "So, um, we're gonna, like, ship it Friday I guess")
	if err != nil {
		t.Fatalf("Simplify() error: %v", err)
	}
	if english != "We will ship on Friday." {
		t.Errorf("unexpected output %q", english)
	}
	if f.last.Model != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected model %q", f.last.Model)
	}
	if len(f.last.Messages) != 2 || f.last.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected system and user messages, got %+v", f.last.Messages)
	}
	if f.last.Messages[1].Content != "So, um, we're gonna, like, ship it Friday I guess" {
		t.Errorf("user message must be the raw text, got %q", f.last.Messages[1].Content)
	}
}

func TestProviderFailures(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeChat
	}{
		{"server error", &fakeChat{status: http.StatusInternalServerError}},
		{"empty content", &fakeChat{content: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newFake(t, tt.fake)
			_, err := NewGroq(cfg, zerolog.Nop()).Simplify(context.Background(), "text")
			var pe *apperr.ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ProviderError, got %v", err)
			}
			if pe.Provider != "groq" || pe.Op != "simplify" {
				t.Errorf("unexpected error %+v", pe)
			}
			if tt.fake.calls != 1 {
				t.Errorf("retry is opt-in, got %d calls", tt.fake.calls)
			}
		})
	}
}

func TestUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := testConfig(srv.URL)
	srv.Close()

	_, err := NewGemini(cfg, zerolog.Nop()).Translate(context.Background(), "texto")
	if !apperr.IsProvider(err) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}
