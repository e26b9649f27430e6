package handler

import (
	"net/http"
	"strconv"

	"foodcourt/internal/model"
	"foodcourt/internal/service"

	"github.com/rs/zerolog"
)

// FoodHandler handles menu catalogue HTTP requests.
type FoodHandler struct {
	service service.FoodService
	logger  zerolog.Logger
}

// NewFoodHandler creates a new food handler.
func NewFoodHandler(service service.FoodService, logger zerolog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger.With().Str("handler", "food").Logger(),
	}
}

// GetAll handles GET /api/foods requests.
func (h *FoodHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	foods, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, foods)
}

// GetByID handles GET /api/foods/{id} requests.
func (h *FoodHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid food ID", h.logger)
		return
	}

	food, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if food == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeFoodNotFound, "food not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, food)
}

// Search handles GET /api/foods/search requests.
func (h *FoodHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "search query is required", h.logger)
		return
	}

	foods, err := h.service.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, foods)
}

// GetCategories handles GET /api/categories requests.
func (h *FoodHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
