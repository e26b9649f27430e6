package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"foodcourt/internal/model"
	"foodcourt/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminHandler handles the admin dashboard HTTP requests: order management,
// catalogue edits and revenue reporting.
type AdminHandler struct {
	orders  service.OrderService
	revenue service.RevenueService
	foods   service.FoodService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	orders service.OrderService,
	revenue service.RevenueService,
	foods service.FoodService,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		orders:  orders,
		revenue: revenue,
		foods:   foods,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// ListOrders handles GET /api/admin/orders requests. An optional status
// query parameter narrows the list to one lifecycle stage.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := model.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.orders.ListAll(r.Context(), status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// ListHistory handles GET /api/admin/orders/history requests.
func (h *AdminHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAllHistory(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// AdvanceOrder handles POST /api/admin/orders/{userID}/{id}/advance
// requests. Orders are keyed per owner, so the owner's ID travels in the
// path alongside the order's.
func (h *AdminHandler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	ownerID := r.PathValue("userID")
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid order ID format", h.logger)
		return
	}

	order, err := h.orders.Advance(r.Context(), ownerID, orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// DailyRevenue handles GET /api/admin/revenue/daily requests.
func (h *AdminHandler) DailyRevenue(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.revenue.Daily(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, buckets)
}

// MonthlyRevenue handles GET /api/admin/revenue/monthly requests.
func (h *AdminHandler) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.revenue.Monthly(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, buckets)
}

// CreateFood handles POST /api/admin/foods requests.
func (h *AdminHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var food model.Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if food.Title == "" || food.Price <= 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "title and a positive price are required", h.logger)
		return
	}
	food.CreatedAt = time.Now()

	if err := h.foods.Create(r.Context(), &food); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, food)
}
