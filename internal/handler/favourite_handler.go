package handler

import (
	"net/http"
	"strconv"

	"foodcourt/internal/middleware"
	"foodcourt/internal/model"
	"foodcourt/internal/service"

	"github.com/rs/zerolog"
)

// FavouriteHandler handles favourite-food HTTP requests.
type FavouriteHandler struct {
	service service.FavouriteService
	logger  zerolog.Logger
}

// NewFavouriteHandler creates a new favourite handler.
func NewFavouriteHandler(service service.FavouriteService, logger zerolog.Logger) *FavouriteHandler {
	return &FavouriteHandler{
		service: service,
		logger:  logger.With().Str("handler", "favourite").Logger(),
	}
}

// List handles GET /api/favourites requests.
func (h *FavouriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favs, err := h.service.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, favs)
}

// Add handles POST /api/favourites/{foodID} requests.
func (h *FavouriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	foodID, err := strconv.ParseInt(r.PathValue("foodID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid food ID", h.logger)
		return
	}

	if err := h.service.Add(r.Context(), middleware.UserID(r.Context()), foodID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Remove handles DELETE /api/favourites/{foodID} requests.
func (h *FavouriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	foodID, err := strconv.ParseInt(r.PathValue("foodID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid food ID", h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), middleware.UserID(r.Context()), foodID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
