package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"foodcourt/internal/middleware"
	"foodcourt/internal/model"
	"foodcourt/internal/service"

	"github.com/rs/zerolog"
)

// ReviewHandler handles food review HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// ListByFood handles GET /api/foods/{id}/reviews requests.
func (h *ReviewHandler) ListByFood(w http.ResponseWriter, r *http.Request) {
	foodID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid food ID", h.logger)
		return
	}

	reviews, err := h.service.ListByFood(r.Context(), foodID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// Add handles POST /api/foods/{id}/reviews requests.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	foodID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid food ID", h.logger)
		return
	}

	var req model.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	review, err := h.service.Add(r.Context(), middleware.UserID(r.Context()), foodID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}
