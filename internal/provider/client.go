// Package provider builds go-openai clients for the OpenAI-compatible
// endpoints the pipeline talks to (Groq, Gemini).
package provider

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	Groq   = "groq"
	Gemini = "gemini"
)

// Config describes one OpenAI-compatible endpoint.
type Config struct {
	Name    string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a client bound to cfg.BaseURL with a bounded timeout.
func NewClient(cfg Config) *openai.Client {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	c.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return openai.NewClientWithConfig(c)
}

// IsTransient reports whether a provider error is worth retrying:
// rate limits, server errors, and network failures.
func IsTransient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return transientStatus(reqErr.HTTPStatusCode)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
