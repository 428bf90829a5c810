// Package transcribe runs the transcription pipeline: speech-to-text,
// language detection, then translation or simplification into plain English.
package transcribe

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"meetscribe/internal/model"
	"meetscribe/internal/stt"
)

// English is the only label that routes to simplification.
const English = "english"

var tracer = otel.Tracer("meetscribe/transcribe")

// LanguageDetector returns the language name of a text.
type LanguageDetector interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Translator produces a plain-English translation.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Simplifier rewrites English text in simpler English.
type Simplifier interface {
	Simplify(ctx context.Context, text string) (string, error)
}

// Service composes the pipeline stages. It is safe for concurrent use.
type Service struct {
	stt            stt.Provider
	detector       LanguageDetector
	translator     Translator
	simplifier     Simplifier
	normalizeLabel bool
	log            zerolog.Logger
}

type Option func(*Service)

// WithLabelNormalization makes the english check tolerate variant phrasing
// such as "English (US)". Off by default.
func WithLabelNormalization(enabled bool) Option {
	return func(s *Service) { s.normalizeLabel = enabled }
}

func NewService(p stt.Provider, d LanguageDetector, t Translator, s Simplifier, log zerolog.Logger, opts ...Option) *Service {
	svc := &Service{
		stt:        p,
		detector:   d,
		translator: t,
		simplifier: s,
		log:        log,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Transcribe runs every stage in order on the audio file at audioPath.
// The first failing stage aborts the run and its error is returned as is.
func (s *Service) Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error) {
	startTime := time.Now()
	ctx, span := tracer.Start(ctx, "transcribe",
		trace.WithAttributes(attribute.String("stt.provider", s.stt.Name())))
	defer span.End()

	original, err := stage(ctx, "stt.transcribe", func(ctx context.Context) (string, error) {
		res, err := s.stt.Transcribe(ctx, audioPath)
		if err != nil {
			return "", err
		}
		return res.Transcript, nil
	})
	if err != nil {
		return nil, err
	}

	language, err := stage(ctx, "ai.detect_language", func(ctx context.Context) (string, error) {
		return s.detector.DetectLanguage(ctx, original)
	})
	if err != nil {
		return nil, err
	}

	var english string
	if s.isEnglish(language) {
		english, err = stage(ctx, "ai.simplify", func(ctx context.Context) (string, error) {
			return s.simplifier.Simplify(ctx, original)
		})
	} else {
		english, err = stage(ctx, "ai.translate", func(ctx context.Context) (string, error) {
			return s.translator.Translate(ctx, original)
		})
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("language", language))
	s.log.Info().
		Str("language", language).
		Int("original_length", len(original)).
		Int("english_length", len(english)).
		Dur("duration", time.Since(startTime)).
		Msg("transcription pipeline complete")

	return &model.TranscriptionResult{
		Language: language,
		Original: original,
		English:  english,
	}, nil
}

func (s *Service) isEnglish(label string) bool {
	if s.normalizeLabel {
		label = NormalizeLabel(label)
	}
	return IsEnglish(label)
}

// IsEnglish reports whether label is exactly "english", ignoring case.
// Variants like "english (us)" do not match.
func IsEnglish(label string) bool {
	return strings.EqualFold(label, English)
}

var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// NormalizeLabel trims and lower-cases label and drops parenthetical
// qualifiers: "English (US) " becomes "english".
func NormalizeLabel(label string) string {
	label = parenthetical.ReplaceAllString(label, "")
	return strings.ToLower(strings.TrimSpace(label))
}

func stage(ctx context.Context, name string, fn func(context.Context) (string, error)) (string, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	out, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("output.length", len(out)))
	return out, nil
}
