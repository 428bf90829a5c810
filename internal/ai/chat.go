package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"meetscribe/internal/apperr"
	"meetscribe/internal/provider"
	"meetscribe/internal/retry"
)

// chatClient issues one-shot chat completions against an OpenAI-compatible
// endpoint. It holds no conversation state.
type chatClient struct {
	client   *openai.Client
	provider string
	policy   retry.Policy
	log      zerolog.Logger
}

func newChatClient(client *openai.Client, providerName string, policy retry.Policy, log zerolog.Logger) chatClient {
	policy.RetryIf = provider.IsTransient
	return chatClient{
		client:   client,
		provider: providerName,
		policy:   policy,
		log:      log,
	}
}

// complete sends the prompts and returns the trimmed content of the first
// choice. An empty system prompt is omitted.
func (c chatClient) complete(ctx context.Context, op, model, systemPrompt, userPrompt string) (string, error) {
	startTime := time.Now()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	c.log.Debug().
		Str("op", op).
		Str("model", model).
		Int("prompt_length", len(systemPrompt)+len(userPrompt)).
		Msg("calling chat completion")

	resp, err := retry.Do(ctx, c.policy, func(ctx context.Context) (openai.ChatCompletionResponse, error) {
		return c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    model,
			Messages: messages,
		})
	})
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("chat completion failed")
		return "", apperr.NewProvider(c.provider, op, err)
	}

	if len(resp.Choices) == 0 {
		return "", apperr.NewProvider(c.provider, op, errors.New("no choices returned"))
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", apperr.NewProvider(c.provider, op, errors.New("empty completion returned"))
	}

	c.log.Info().
		Str("op", op).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Int("length", len(content)).
		Dur("duration", time.Since(startTime)).
		Msg("chat completion received")

	return content, nil
}
