// Package extract forwards plain-English transcripts to the external
// text-extraction service.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"meetscribe/internal/apperr"
	"meetscribe/internal/logger"
	"meetscribe/internal/retry"
)

// Request is the body sent to the extraction service.
type Request struct {
	Transcript string `json:"transcript"`
}

// Client posts transcripts to the extraction service.
type Client struct {
	url        string
	httpClient *http.Client
	policy     retry.Policy
	log        zerolog.Logger
}

// NewClient creates an extraction client. maxAttempts of 1 disables retry.
func NewClient(url string, timeout time.Duration, maxAttempts int, log zerolog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		policy:     retry.Attempts(maxAttempts),
		log:        logger.Component(log, "extract"),
	}
}

// Extract sends text and returns the service's JSON response verbatim,
// whatever its status code. Network failures and non-JSON bodies are
// reported as *apperr.ExtractionUnreachableError.
func (c *Client) Extract(ctx context.Context, text string) (json.RawMessage, error) {
	payload, err := json.Marshal(Request{Transcript: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	startTime := time.Now()
	body, err := retry.Do(ctx, c.policy, func(ctx context.Context) (json.RawMessage, error) {
		return c.post(ctx, payload)
	})
	if err != nil {
		c.log.Warn().Err(err).Str("url", c.url).Msg("extraction service unreachable")
		return nil, &apperr.ExtractionUnreachableError{URL: c.url, Err: err}
	}

	c.log.Info().
		Int("bytes", len(body)).
		Dur("duration", time.Since(startTime)).
		Msg("extraction response received")
	return body, nil
}

func (c *Client) post(ctx context.Context, payload []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if !json.Valid(body) {
		c.log.Debug().Int("status", resp.StatusCode).Str("body", logger.Preview(string(body), 500)).Msg("non-JSON response")
		return nil, errors.New("response is not valid JSON")
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("extraction service returned non-200, passing body through")
	}
	return json.RawMessage(body), nil
}
