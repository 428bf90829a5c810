package ai

import (
	"context"

	"github.com/rs/zerolog"

	"meetscribe/internal/config"
	"meetscribe/internal/logger"
	"meetscribe/internal/provider"
	"meetscribe/internal/retry"
)

// Groq rewrites English text in simpler English using a Groq-hosted model
type Groq struct {
	chat  chatClient
	model string
}

// NewGroq creates a Groq client from configuration
func NewGroq(cfg *config.Config, log zerolog.Logger) *Groq {
	log = logger.Component(log, "groq")
	client := provider.NewClient(provider.Config{
		Name:    provider.Groq,
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	return &Groq{
		chat:  newChatClient(client, provider.Groq, retry.Attempts(cfg.ProviderMaxAttempts), log),
		model: cfg.SimplifyModel,
	}
}

// Simplify rewrites already-English text in clear, plain English.
// It does not translate.
func (g *Groq) Simplify(ctx context.Context, text string) (string, error) {
	systemPrompt, userPrompt := BuildSimplifyPrompt(text)
	return g.chat.complete(ctx, "simplify", g.model, systemPrompt, userPrompt)
}
