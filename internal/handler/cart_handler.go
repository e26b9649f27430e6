package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"foodcourt/internal/middleware"
	"foodcourt/internal/model"
	"foodcourt/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart and checkout HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// GetCart handles GET /api/cart requests.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.GetCart(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

// Add handles POST /api/cart requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AddCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	line, err := h.service.Add(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, line)
}

// Increase handles POST /api/cart/{foodID}/increase requests.
func (h *CartHandler) Increase(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.service.Increase)
}

// Decrease handles POST /api/cart/{foodID}/decrease requests.
func (h *CartHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.service.Decrease)
}

// Remove handles DELETE /api/cart/{foodID} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

// Checkout handles POST /api/checkout requests.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Checkout(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *CartHandler) adjust(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID string, foodID int64) (*model.CartLine, error)) {
	foodID, err := strconv.ParseInt(r.PathValue("foodID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid food ID", h.logger)
		return
	}

	line, err := op(r.Context(), middleware.UserID(r.Context()), foodID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, line)
}
