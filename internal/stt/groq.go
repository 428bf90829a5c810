package stt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"meetscribe/internal/apperr"
	"meetscribe/internal/provider"
	"meetscribe/internal/retry"
)

// GroqProvider implements STT using Groq's hosted Whisper models through
// the OpenAI-compatible audio transcription API
type GroqProvider struct {
	client *openai.Client
	model  string
	policy retry.Policy
	log    zerolog.Logger
}

// NewGroqProvider creates a new Groq STT provider
func NewGroqProvider(client *openai.Client, model string, policy retry.Policy, log zerolog.Logger) *GroqProvider {
	policy.RetryIf = provider.IsTransient
	return &GroqProvider{
		client: client,
		model:  model,
		policy: policy,
		log:    log,
	}
}

// Name returns the provider name
func (p *GroqProvider) Name() string {
	return provider.Groq
}

// Transcribe sends the audio file to Groq Whisper and returns the transcript
func (p *GroqProvider) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	startTime := time.Now()

	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}

	p.log.Info().
		Str("path", audioPath).
		Int64("bytes", info.Size()).
		Str("extension", filepath.Ext(audioPath)).
		Msg("processing audio file")

	resp, err := retry.Do(ctx, p.policy, func(ctx context.Context) (openai.AudioResponse, error) {
		return p.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    p.model,
			FilePath: audioPath,
			Format:   openai.AudioResponseFormatVerboseJSON,
		})
	})
	if err != nil {
		p.log.Error().Err(err).Msg("transcription request failed")
		return nil, apperr.NewProvider(p.Name(), "transcribe", err)
	}

	transcript := strings.TrimSpace(resp.Text)

	// Empty transcript is not valid
	if transcript == "" {
		p.log.Warn().Msg("empty transcript returned")
		return nil, apperr.NewProvider(p.Name(), "transcribe", errors.New("empty transcript returned"))
	}

	p.log.Info().
		Str("language_hint", resp.Language).
		Int("length", len(transcript)).
		Dur("duration", time.Since(startTime)).
		Msg("transcription successful")

	return &Result{
		Transcript: transcript,
		Language:   resp.Language,
		Duration:   resp.Duration,
		Provider:   p.Name(),
	}, nil
}
