package router

import (
	"net/http"

	"foodcourt/internal/auth"
	"foodcourt/internal/handler"
	"foodcourt/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Food      *handler.FoodHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Favourite *handler.FavouriteHandler
	Review    *handler.ReviewHandler
	Chat      *handler.ChatHandler
	Upload    *handler.UploadHandler
	Admin     *handler.AdminHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, tokens *auth.Manager, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Account routes
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("GET /api/profile", h.Auth.GetProfile)
	mux.HandleFunc("PUT /api/profile", h.Auth.UpdateProfile)

	// Menu catalogue routes
	mux.HandleFunc("GET /api/foods", h.Food.GetAll)
	mux.HandleFunc("GET /api/foods/search", h.Food.Search)
	mux.HandleFunc("GET /api/foods/{id}", h.Food.GetByID)
	mux.HandleFunc("GET /api/categories", h.Food.GetCategories)

	// Cart and checkout routes
	mux.HandleFunc("GET /api/cart", h.Cart.GetCart)
	mux.HandleFunc("POST /api/cart", h.Cart.Add)
	mux.HandleFunc("POST /api/cart/{foodID}/increase", h.Cart.Increase)
	mux.HandleFunc("POST /api/cart/{foodID}/decrease", h.Cart.Decrease)
	mux.HandleFunc("DELETE /api/cart/{foodID}", h.Cart.Remove)
	mux.HandleFunc("POST /api/checkout", h.Cart.Checkout)

	// Order tracking routes
	mux.HandleFunc("GET /api/orders", h.Order.ListMine)
	mux.HandleFunc("GET /api/orders/history", h.Order.ListMyHistory)
	mux.HandleFunc("POST /api/orders/{id}/archive", h.Order.Archive)

	// Favourite routes
	mux.HandleFunc("GET /api/favourites", h.Favourite.List)
	mux.HandleFunc("POST /api/favourites/{foodID}", h.Favourite.Add)
	mux.HandleFunc("DELETE /api/favourites/{foodID}", h.Favourite.Remove)

	// Review routes
	mux.HandleFunc("GET /api/foods/{id}/reviews", h.Review.ListByFood)
	mux.HandleFunc("POST /api/foods/{id}/reviews", h.Review.Add)

	// Assistant and upload routes
	mux.HandleFunc("POST /api/chat", h.Chat.Chat)
	mux.HandleFunc("POST /api/upload", h.Upload.Upload)

	// Admin routes behind the role check
	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/orders", h.Admin.ListOrders)
	admin.HandleFunc("GET /api/admin/orders/history", h.Admin.ListHistory)
	admin.HandleFunc("POST /api/admin/orders/{userID}/{id}/advance", h.Admin.AdvanceOrder)
	admin.HandleFunc("GET /api/admin/revenue/daily", h.Admin.DailyRevenue)
	admin.HandleFunc("GET /api/admin/revenue/monthly", h.Admin.MonthlyRevenue)
	admin.HandleFunc("POST /api/admin/foods", h.Admin.CreateFood)
	mux.Handle("/api/admin/", middleware.AdminOnly(logger)(admin))

	public := map[string]bool{
		"/health":            true,
		"/api/auth/register": true,
		"/api/auth/login":    true,
	}

	// Apply middleware in order: Recovery -> Logging -> CORS -> JWTAuth
	var root http.Handler = mux
	root = middleware.JWTAuth(tokens, public, logger)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
