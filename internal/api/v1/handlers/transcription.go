package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"whisperd/internal/api/middleware"
	"whisperd/internal/api/v1/dto"
	"whisperd/internal/api/v1/services"
	apperrors "whisperd/internal/app/errors"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Transcribe handles POST /transcribe
//
// @Summary Transcribe an audio file
// @Description Runs the loaded speech model over the uploaded audio and returns the recognised text. The language is fixed by server configuration.
// @Tags transcription
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file to transcribe"
// @Success 200 {object} dto.TranscribeResponse "Recognised text, empty when no speech was detected"
// @Failure 400 {object} dto.ErrorResponse "No file part in the request"
// @Failure 500 {object} dto.ErrorResponse "Staging or transcription failed"
// @Router /transcribe [post]
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		if noFilePart(err) {
			middleware.HandleError(c, apperrors.ErrMissingFile)
			return
		}
		middleware.HandleError(c, apperrors.WithKind(err, apperrors.KindStaging))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, apperrors.WithKind(err, apperrors.KindStaging))
		return
	}
	defer file.Close()

	text, err := h.service.Transcribe(c.Request.Context(), file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranscribeResponse{Text: text})
}

// noFilePart reports whether a form parse error means the request carries no
// usable "file" part. Truncated bodies count: the part never arrived whole.
func noFilePart(err error) bool {
	return errors.Is(err, http.ErrMissingFile) ||
		errors.Is(err, http.ErrNotMultipart) ||
		errors.Is(err, http.ErrMissingBoundary) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}
