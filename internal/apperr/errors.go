// Package apperr defines the error taxonomy of the transcription pipeline
// and how each kind surfaces over HTTP.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports missing or invalid caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation creates a ValidationError with the given user-facing message.
func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ProviderError reports a failed call to a transcription or language-model
// provider: auth failure, network failure, or a malformed response.
type ProviderError struct {
	Provider string // e.g. "groq", "gemini"
	Op       string // e.g. "transcribe", "detect_language"
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProvider wraps err as a ProviderError. A nil err yields nil.
func NewProvider(provider, op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

// ExtractionUnreachableError reports that the extraction service could not
// be reached or answered with something other than JSON.
type ExtractionUnreachableError struct {
	URL string
	Err error
}

func (e *ExtractionUnreachableError) Error() string {
	return fmt.Sprintf("extraction service %s: %v", e.URL, e.Err)
}

func (e *ExtractionUnreachableError) Unwrap() error { return e.Err }

// IsProvider reports whether err is, or wraps, a ProviderError.
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// HTTPStatus returns the response status for err.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		pe *ProviderError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &pe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
