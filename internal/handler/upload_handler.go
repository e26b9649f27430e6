package handler

import (
	"net/http"

	"foodcourt/internal/model"
	"foodcourt/internal/storage"

	"github.com/rs/zerolog"
)

// maxUploadSize bounds review and profile image uploads.
const maxUploadSize = 5 << 20

// UploadHandler handles image upload HTTP requests.
type UploadHandler struct {
	uploader storage.Uploader
	logger   zerolog.Logger
}

// NewUploadHandler creates a new upload handler. The uploader may be nil
// when object storage is disabled.
func NewUploadHandler(uploader storage.Uploader, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/upload requests. Expects a multipart form with a
// single "image" file and returns the hosted URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, model.ErrCodeInternalError, "image uploads are disabled", h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "image file too large or malformed", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "image file is required", h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.uploader.Upload(r.Context(), "uploads", header.Filename, file, contentType)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
