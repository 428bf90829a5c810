package stt

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"meetscribe/internal/config"
	"meetscribe/internal/logger"
	"meetscribe/internal/provider"
	"meetscribe/internal/retry"
)

// NewProvider creates the STT provider named by cfg.STTProvider
func NewProvider(cfg *config.Config, log zerolog.Logger) (Provider, error) {
	name := strings.ToLower(cfg.STTProvider)
	if name == "" {
		name = provider.Groq
	}

	switch name {
	case provider.Groq:
		return createGroqProvider(cfg, logger.Component(log, "stt"))
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: groq", name)
	}
}

func createGroqProvider(cfg *config.Config, log zerolog.Logger) (Provider, error) {
	if cfg.GroqAPIKey == "" {
		// not fatal: calls fail with the provider's auth error
		log.Warn().Msg("GROQ_API_KEY is not set, transcription calls will fail")
	}

	log.Info().Str("model", cfg.STTModel).Str("base_url", cfg.GroqBaseURL).Msg("creating Groq STT provider")
	client := provider.NewClient(provider.Config{
		Name:    provider.Groq,
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	return NewGroqProvider(client, cfg.STTModel, retry.Attempts(cfg.ProviderMaxAttempts), log), nil
}
