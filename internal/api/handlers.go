package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"meetscribe/internal/apperr"
	"meetscribe/internal/model"
	"meetscribe/internal/storage"
	"meetscribe/internal/utils"
)

const (
	audioField = "audio"

	msgAudioRequired         = "Audio file required"
	msgAudioTooLarge         = "Audio file exceeds size limit"
	msgProviderError         = "Upstream Provider Error"
	msgInternalError         = "Internal Server Error"
	msgExtractionUnreachable = "Failed to reach Node.js server"
)

// Transcriber turns an audio file into a transcript and its English form.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error)
}

// Extractor sends English text to the extraction service.
type Extractor interface {
	Extract(ctx context.Context, text string) (json.RawMessage, error)
}

type Handler struct {
	transcriber    Transcriber
	extractor      Extractor
	store          *storage.AudioStore
	maxUploadBytes int64
	log            zerolog.Logger
}

func NewHandler(t Transcriber, e Extractor, store *storage.AudioStore, maxUploadBytes int64, log zerolog.Logger) *Handler {
	return &Handler{
		transcriber:    t,
		extractor:      e,
		store:          store,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.healthCheck)
	r.POST("/transcribe", bodyLimit(h.maxUploadBytes), h.transcribe)
}

// healthCheck returns server health status
func (h *Handler) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "meetscribe",
	})
}

// transcribe handles POST /transcribe: audio upload → transcript → extraction
func (h *Handler) transcribe(c *gin.Context) {
	log := h.log.With().Str(requestIDKey, c.GetString(requestIDKey)).Logger()

	file, err := c.FormFile(audioField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(c, log, apperr.NewValidation(msgAudioTooLarge))
			return
		}
		log.Debug().Err(err).Msg("audio field missing")
		h.writeError(c, log, apperr.NewValidation(msgAudioRequired))
		return
	}

	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		h.writeError(c, log, apperr.NewValidation(msgAudioTooLarge))
		return
	}

	audio, err := h.store.SaveAudio(file)
	if err != nil {
		h.writeError(c, log, fmt.Errorf("save audio: %w", err))
		return
	}
	defer func() {
		if err := audio.Remove(); err != nil {
			log.Warn().Err(err).Str("path", audio.Path).Msg("failed to remove audio file")
		}
	}()

	log.Info().Str("filename", file.Filename).Int64("bytes", audio.Size).Msg("audio uploaded")

	ctx := c.Request.Context()
	result, err := h.transcriber.Transcribe(ctx, audio.Path)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Transcript: *result,
		Extracted:  h.extract(ctx, log, result.English),
	})
}

// extract never fails: an unreachable service becomes an error value.
func (h *Handler) extract(ctx context.Context, log zerolog.Logger, english string) any {
	body, err := h.extractor.Extract(ctx, english)
	if err != nil {
		var ue *apperr.ExtractionUnreachableError
		if !errors.As(err, &ue) {
			log.Warn().Err(err).Msg("extraction failed")
		}
		return model.ExtractionFailure{
			Error:   msgExtractionUnreachable,
			Details: err.Error(),
		}
	}
	return body
}

// writeError maps err to a status. Only validation and provider failures
// reach the client verbatim; anything else is logged and reported generically.
func (h *Handler) writeError(c *gin.Context, log zerolog.Logger, err error) {
	status := apperr.HTTPStatus(err)

	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		log.Debug().Str("reason", ve.Message).Msg("rejected request")
		utils.Error(c, status, ve.Message)
	case status == http.StatusBadGateway:
		log.Error().Err(err).Int("status", status).Msg("transcription failed")
		utils.ErrorWithDetails(c, status, msgProviderError, err.Error())
	default:
		log.Error().Err(err).Int("status", status).Msg("request failed")
		utils.Error(c, http.StatusInternalServerError, msgInternalError)
	}
}
