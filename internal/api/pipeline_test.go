package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"meetscribe/internal/ai"
	"meetscribe/internal/config"
	"meetscribe/internal/extract"
	"meetscribe/internal/storage"
	"meetscribe/internal/stt"
	"meetscribe/internal/transcribe"
)

// fakeProviders answers Groq and Gemini calls the way the hosted APIs do
// for a short Spanish recording.
type fakeProviders struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeProviders) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/groq/audio/transcriptions":
		f.record("transcribe")
		fmt.Fprint(w, `{"text":"Mañana María enviará el informe al cliente.","language":"spanish"}`)
	case "/gemini/chat/completions":
		var req openai.ChatCompletionRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt := req.Messages[len(req.Messages)-1].Content
		switch {
		case strings.HasPrefix(prompt, "Detect language"):
			f.record("detect")
			writeChoice(w, "Spanish")
		case strings.HasPrefix(prompt, "Translate"):
			f.record("translate")
			writeChoice(w, "Tomorrow María will send the report to the client.")
		default:
			http.Error(w, `{"error":{"message":"unexpected prompt"}}`, http.StatusBadRequest)
		}
	case "/groq/chat/completions":
		f.record("simplify")
		writeChoice(w, "simplified")
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeProviders) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func writeChoice(w http.ResponseWriter, content string) {
	json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
		}},
	})
}

func TestTranscribeSpanishEndToEnd(t *testing.T) {
	providers := &fakeProviders{}
	providerSrv := httptest.NewServer(providers)
	defer providerSrv.Close()

	extracted := make(chan string, 1)
	extractSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req extract.Request
		json.NewDecoder(r.Body).Decode(&req)
		extracted <- req.Transcript
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"tasks":[{"summary":"Send the report to the client","assignee_name":"María","due_date":"tomorrow"}]}`)
	}))
	defer extractSrv.Close()

	cfg := &config.Config{
		GroqAPIKey:          "gsk_test",
		GeminiAPIKey:        "gem_test",
		GroqBaseURL:         providerSrv.URL + "/groq",
		GeminiBaseURL:       providerSrv.URL + "/gemini",
		STTProvider:         "groq",
		STTModel:            "whisper-large-v3",
		DetectModel:         "gemini-2.5-flash",
		TranslateModel:      "gemini-2.5-flash",
		SimplifyModel:       "llama-3.3-70b-versatile",
		ProviderTimeout:     5 * time.Second,
		ProviderMaxAttempts: 1,
	}
	log := zerolog.Nop()

	sttProvider, err := stt.NewProvider(cfg, log)
	if err != nil {
		t.Fatal(err)
	}
	gemini := ai.NewGemini(cfg, log)
	svc := transcribe.NewService(sttProvider, gemini, gemini, ai.NewGroq(cfg, log), log)
	extractor := extract.NewClient(extractSrv.URL+"/extract", 5*time.Second, 1, log)
	router := NewRouter(NewHandler(svc, extractor, storage.NewAudioStore(t.TempDir()), 1<<20, log), log)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "audio", "reunion.wav", []byte("RIFF spanish audio")))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Transcript struct {
			Language string `json:"language"`
			Original string `json:"original"`
			English  string `json:"english"`
		} `json:"transcript"`
		Extracted struct {
			Tasks []map[string]string `json:"tasks"`
		} `json:"extracted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.Transcript.Language != "spanish" {
		t.Errorf("expected spanish, got %q", resp.Transcript.Language)
	}
	if !strings.Contains(resp.Transcript.Original, "informe") {
		t.Errorf("original should hold the Spanish text, got %q", resp.Transcript.Original)
	}
	if resp.Transcript.English == "" || resp.Transcript.English == resp.Transcript.Original {
		t.Errorf("expected an English translation, got %q", resp.Transcript.English)
	}
	if sent := <-extracted; sent != resp.Transcript.English {
		t.Errorf("extraction service must receive the English text, got %q", sent)
	}
	if len(resp.Extracted.Tasks) != 1 || resp.Extracted.Tasks[0]["assignee_name"] != "María" {
		t.Errorf("unexpected extracted payload %+v", resp.Extracted)
	}

	providers.mu.Lock()
	defer providers.mu.Unlock()
	if got := strings.Join(providers.calls, ","); got != "transcribe,detect,translate" {
		t.Errorf("unexpected provider call sequence %q", got)
	}
}
