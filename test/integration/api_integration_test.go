package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodcourt/internal/auth"
	"foodcourt/internal/chat"
	"foodcourt/internal/handler"
	"foodcourt/internal/model"
	"foodcourt/internal/repository"
	"foodcourt/internal/revenue"
	"foodcourt/internal/router"
	"foodcourt/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "integration-test-secret"

func setupTestServer(t *testing.T, testDB *TestDB) (http.Handler, *auth.Manager) {
	t.Helper()

	logger := zerolog.Nop()

	// Initialize repositories
	foodRepo := repository.NewFoodRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	userRepo := repository.NewUserRepository(testDB.Pool, logger)
	favouriteRepo := repository.NewFavouriteRepository(testDB.Pool, logger)
	reviewRepo := repository.NewReviewRepository(testDB.Pool, logger)

	tokens := auth.NewManager(testJWTSecret, time.Hour)

	// Initialize services; receipt email and image uploads stay disabled
	foodService := service.NewFoodService(foodRepo, logger)
	cartService := service.NewCartService(cartRepo, foodRepo, orderRepo, userRepo, logger)
	orderService := service.NewOrderService(orderRepo, userRepo, nil, logger)
	revenueService := service.NewRevenueService(orderRepo, logger)
	favouriteService := service.NewFavouriteService(favouriteRepo, foodRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, foodRepo, userRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, logger)

	assistant := chat.NewAssistant(nil, foodRepo, logger)

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService, logger),
		Food:      handler.NewFoodHandler(foodService, logger),
		Cart:      handler.NewCartHandler(cartService, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		Favourite: handler.NewFavouriteHandler(favouriteService, logger),
		Review:    handler.NewReviewHandler(reviewService, logger),
		Chat:      handler.NewChatHandler(assistant, logger),
		Upload:    handler.NewUploadHandler(nil, logger),
		Admin:     handler.NewAdminHandler(orderService, revenueService, foodService, logger),
	}

	return router.New(handlers, tokens, logger), tokens
}

func doJSON(t *testing.T, server http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestAuthAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server, _ := setupTestServer(t, testDB)

	t.Run("Register, login and fetch profile", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		rec := doJSON(t, server, http.MethodPost, "/api/auth/register", "",
			`{"email": "jane@example.com", "password": "secret123", "fullName": "Jane"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, server, http.MethodPost, "/api/auth/login", "",
			`{"email": "jane@example.com", "password": "secret123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var authResp model.AuthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&authResp))
		require.NotEmpty(t, authResp.Token)

		rec = doJSON(t, server, http.MethodGet, "/api/profile", authResp.Token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var user model.User
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
		assert.Equal(t, "Jane", user.FullName)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := `{"email": "jane@example.com", "password": "secret123"}`
		rec := doJSON(t, server, http.MethodPost, "/api/auth/register", "", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, server, http.MethodPost, "/api/auth/register", "", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Protected route without token", func(t *testing.T) {
		rec := doJSON(t, server, http.MethodGet, "/api/cart", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOrderLifecycleAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server, tokens := setupTestServer(t, testDB)
	ctx := context.Background()

	CleanupDB(t, testDB.Pool)

	// A single food priced so the order totals 50.00 + 1.00 tax + 10.00 fee
	_, err := testDB.Pool.Exec(ctx, `
		INSERT INTO foods (id, title, price, created_at)
		VALUES (7, 'Family Feast', 25.00, now())`)
	require.NoError(t, err)

	// Register the customer through the API
	rec := doJSON(t, server, http.MethodPost, "/api/auth/register", "",
		`{"email": "jane@example.com", "password": "secret123", "fullName": "Jane"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var customer model.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&customer))
	userToken := customer.Token
	userID := customer.User.ID

	adminToken, err := tokens.Generate("admin-1", "admin@example.com", model.RoleAdmin)
	require.NoError(t, err)

	// Build the cart: two servings of the feast
	rec = doJSON(t, server, http.MethodPost, "/api/cart", userToken, `{"foodId": 7, "quantity": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, server, http.MethodPost, "/api/cart/7/increase", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Checkout with the line selected
	rec = doJSON(t, server, http.MethodPost, "/api/checkout", userToken,
		`{"selectedFoodIds": [7], "address": "1 Main St", "paymentMethod": "Cash on Delivery"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
	assert.Equal(t, 50.00, order.Subtotal)
	assert.Equal(t, 1.00, order.Tax)
	assert.Equal(t, 10.00, order.DeliveryFee)
	assert.Equal(t, model.StatusWaitConfirmed, order.Status)

	// Archiving before the order is received must fail
	rec = doJSON(t, server, http.MethodPost, "/api/orders/"+order.ID.String()+"/archive", userToken, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Admin walks the order to Received
	advancePath := fmt.Sprintf("/api/admin/orders/%s/%s/advance", userID, order.ID)
	rec = doJSON(t, server, http.MethodPost, advancePath, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, server, http.MethodPost, advancePath, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var advanced model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&advanced))
	assert.Equal(t, model.StatusReceived, advanced.Status)

	// A third advance is rejected; leaving Received means archiving
	rec = doJSON(t, server, http.MethodPost, advancePath, adminToken, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The customer archives the received order
	archivePath := "/api/orders/" + order.ID.String() + "/archive"
	rec = doJSON(t, server, http.MethodPost, archivePath, userToken, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Archiving again reports the conflict, with nothing duplicated
	rec = doJSON(t, server, http.MethodPost, archivePath, userToken, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Gone from the active list
	rec = doJSON(t, server, http.MethodGet, "/api/orders", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var active []model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&active))
	assert.Empty(t, active)

	// Present in history with totals unchanged
	rec = doJSON(t, server, http.MethodGet, "/api/orders/history", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)
	assert.Equal(t, 50.00, history[0].Subtotal)
	assert.Equal(t, 1.00, history[0].Tax)
	require.Len(t, history[0].Lines, 1)
	assert.Equal(t, 2, history[0].Lines[0].Quantity)

	// The archived order now counts towards today's revenue
	rec = doJSON(t, server, http.MethodGet, "/api/admin/revenue/daily", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var buckets []revenue.Bucket
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&buckets))
	require.Len(t, buckets, revenue.DailyWindow)
	assert.InDelta(t, 61.00, buckets[len(buckets)-1].Total, 0.001)

	// Admin routes stay closed to regular users
	rec = doJSON(t, server, http.MethodGet, "/api/admin/revenue/daily", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
