package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"meetscribe/internal/ai"
	"meetscribe/internal/api"
	"meetscribe/internal/config"
	"meetscribe/internal/extract"
	"meetscribe/internal/logger"
	"meetscribe/internal/storage"
	"meetscribe/internal/stt"
	"meetscribe/internal/transcribe"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log := logger.New(logger.Config{}, "meetscribe")
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, "meetscribe")
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	sttProvider, err := stt.NewProvider(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create STT provider")
	}

	gemini := ai.NewGemini(cfg, log)
	groq := ai.NewGroq(cfg, log)
	svc := transcribe.NewService(sttProvider, gemini, gemini, groq,
		logger.Component(log, "transcribe"),
		transcribe.WithLabelNormalization(cfg.NormalizeLanguageLabel))

	extractor := extract.NewClient(cfg.ExtractionURL, cfg.ExtractionTimeout, cfg.ExtractionMaxAttempts, log)
	store := storage.NewAudioStore(cfg.UploadDir)

	handler := api.NewHandler(svc, extractor, store, cfg.MaxUploadBytes, logger.Component(log, "api"))
	router := api.NewRouter(handler, logger.Component(log, "http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("stt_provider", sttProvider.Name()).
			Str("extraction_url", cfg.ExtractionURL).
			Msg("meetscribe backend running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
