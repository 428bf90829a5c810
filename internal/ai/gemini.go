package ai

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"meetscribe/internal/config"
	"meetscribe/internal/logger"
	"meetscribe/internal/provider"
	"meetscribe/internal/retry"
)

// Gemini detects languages and translates text through Gemini's
// OpenAI-compatible endpoint.
type Gemini struct {
	chat           chatClient
	detectModel    string
	translateModel string
}

// NewGemini creates a Gemini client from configuration
func NewGemini(cfg *config.Config, log zerolog.Logger) *Gemini {
	log = logger.Component(log, "gemini")
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set, language detection and translation will fail")
	}
	client := provider.NewClient(provider.Config{
		Name:    provider.Gemini,
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	return &Gemini{
		chat:           newChatClient(client, provider.Gemini, retry.Attempts(cfg.ProviderMaxAttempts), log),
		detectModel:    cfg.DetectModel,
		translateModel: cfg.TranslateModel,
	}
}

// DetectLanguage returns the language name of text, trimmed and lower-cased.
// The vocabulary is whatever the model answers; it is not mapped to codes.
func (g *Gemini) DetectLanguage(ctx context.Context, text string) (string, error) {
	label, err := g.chat.complete(ctx, "detect_language", g.detectModel, "", BuildDetectLanguagePrompt(text))
	if err != nil {
		return "", err
	}
	return strings.ToLower(label), nil
}

// Translate returns a plain-English translation of text
func (g *Gemini) Translate(ctx context.Context, text string) (string, error) {
	return g.chat.complete(ctx, "translate", g.translateModel, "", BuildTranslatePrompt(text))
}
