package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
)

type Config struct {
	Port      string `validate:"required"`
	LogLevel  string `validate:"omitempty,oneof=trace debug info warn error fatal"`
	LogFormat string `validate:"omitempty,oneof=console json"`

	// Missing API keys are not an error here: provider calls fail at call time.
	GroqAPIKey    string
	GeminiAPIKey  string
	GroqBaseURL   string `validate:"required,url"`
	GeminiBaseURL string `validate:"required,url"`

	STTProvider    string `validate:"required"`
	STTModel       string `validate:"required"`
	DetectModel    string `validate:"required"`
	TranslateModel string `validate:"required"`
	SimplifyModel  string `validate:"required"`

	// Durations need a unit suffix: a bare "120" parses as nanoseconds.
	ProviderTimeout     time.Duration `validate:"min=1s"`
	ProviderMaxAttempts int           `validate:"min=1"`

	ExtractionURL         string        `validate:"required,url"`
	ExtractionTimeout     time.Duration `validate:"min=1s"`
	ExtractionMaxAttempts int           `validate:"min=1"`

	UploadDir      string
	MaxUploadBytes int64 `validate:"gt=0"`

	// NormalizeLanguageLabel trims, case-folds and drops parenthetical
	// qualifiers from the detected label before the english check.
	NormalizeLanguageLabel bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:      v.GetString("PORT"),
		LogLevel:  strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),

		GroqAPIKey:    v.GetString("GROQ_API_KEY"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GroqBaseURL:   v.GetString("GROQ_BASE_URL"),
		GeminiBaseURL: v.GetString("GEMINI_BASE_URL"),

		STTProvider:    strings.ToLower(v.GetString("STT_PROVIDER")),
		STTModel:       v.GetString("STT_MODEL"),
		DetectModel:    v.GetString("DETECT_MODEL"),
		TranslateModel: v.GetString("TRANSLATE_MODEL"),
		SimplifyModel:  v.GetString("SIMPLIFY_MODEL"),

		ProviderTimeout:     v.GetDuration("PROVIDER_TIMEOUT"),
		ProviderMaxAttempts: v.GetInt("PROVIDER_MAX_ATTEMPTS"),

		ExtractionURL:         v.GetString("EXTRACTION_URL"),
		ExtractionTimeout:     v.GetDuration("EXTRACTION_TIMEOUT"),
		ExtractionMaxAttempts: v.GetInt("EXTRACTION_MAX_ATTEMPTS"),

		UploadDir:      v.GetString("UPLOAD_DIR"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),

		NormalizeLanguageLabel: v.GetBool("LANGUAGE_LABEL_NORMALIZE"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "7000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("GROQ_BASE_URL", DefaultGroqBaseURL)
	v.SetDefault("GEMINI_BASE_URL", DefaultGeminiBaseURL)
	v.SetDefault("STT_PROVIDER", "groq")
	v.SetDefault("STT_MODEL", "whisper-large-v3")
	v.SetDefault("DETECT_MODEL", "gemini-2.5-flash")
	v.SetDefault("TRANSLATE_MODEL", "gemini-2.5-flash")
	v.SetDefault("SIMPLIFY_MODEL", "llama-3.3-70b-versatile")
	v.SetDefault("PROVIDER_TIMEOUT", 120*time.Second)
	v.SetDefault("PROVIDER_MAX_ATTEMPTS", 1)
	v.SetDefault("EXTRACTION_URL", "http://localhost:6000/extract")
	v.SetDefault("EXTRACTION_TIMEOUT", 60*time.Second)
	v.SetDefault("EXTRACTION_MAX_ATTEMPTS", 1)
	v.SetDefault("UPLOAD_DIR", os.TempDir())
	v.SetDefault("MAX_UPLOAD_BYTES", 25<<20) // Groq's file limit
	v.SetDefault("LANGUAGE_LABEL_NORMALIZE", false)
}
