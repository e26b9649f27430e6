package service

import (
	"context"

	"foodcourt/internal/model"
	"foodcourt/internal/revenue"

	"github.com/google/uuid"
)

// FoodService defines operations for browsing the menu catalogue.
type FoodService interface {
	// GetAll retrieves foods with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Food, error)

	// GetByID retrieves a single food by ID.
	GetByID(ctx context.Context, id int64) (*model.Food, error)

	// Search retrieves foods matching a title query.
	Search(ctx context.Context, query string) ([]model.Food, error)

	// Create adds a food to the catalogue. Admin only.
	Create(ctx context.Context, food *model.Food) error

	// GetCategories retrieves all dashboard categories.
	GetCategories(ctx context.Context) ([]model.Category, error)
}

// CartService defines operations for the per-user cart and checkout.
type CartService interface {
	// GetCart retrieves the user's cart lines.
	GetCart(ctx context.Context, userID string) ([]model.CartLine, error)

	// Add puts a food into the cart, merging quantities with any existing line.
	Add(ctx context.Context, userID string, req *model.AddCartRequest) (*model.CartLine, error)

	// Increase bumps a line's quantity by one.
	Increase(ctx context.Context, userID string, foodID int64) (*model.CartLine, error)

	// Decrease lowers a line's quantity by one, never below one.
	Decrease(ctx context.Context, userID string, foodID int64) (*model.CartLine, error)

	// Remove deletes a line from the cart entirely.
	Remove(ctx context.Context, userID string, foodID int64) error

	// Checkout places an order from the selected cart lines.
	Checkout(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.Order, error)
}

// OrderService defines operations for order tracking and the lifecycle.
type OrderService interface {
	// ListMine retrieves the caller's active orders.
	ListMine(ctx context.Context, userID string) ([]model.Order, error)

	// ListMyHistory retrieves the caller's archived orders.
	ListMyHistory(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves active orders across users, optionally filtered by
	// status. Admin only.
	ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	// ListAllHistory retrieves every archived order. Admin only.
	ListAllHistory(ctx context.Context) ([]model.Order, error)

	// Advance moves an active order one status forward. It refuses to
	// advance past Received: leaving Received is the archive operation,
	// not a status update.
	Advance(ctx context.Context, ownerID string, orderID uuid.UUID) (*model.Order, error)

	// Archive relocates a Received order into the owner's history.
	Archive(ctx context.Context, ownerID string, orderID uuid.UUID) error
}

// RevenueService defines the admin revenue report.
type RevenueService interface {
	// Daily computes the trailing 7-day report from history.
	Daily(ctx context.Context) ([]revenue.Bucket, error)

	// Monthly computes the trailing 12-month report from history.
	Monthly(ctx context.Context) ([]revenue.Bucket, error)
}

// FavouriteService defines operations for per-user favourite foods.
type FavouriteService interface {
	// Add favourites a food for the user.
	Add(ctx context.Context, userID string, foodID int64) error

	// Remove unfavourites a food.
	Remove(ctx context.Context, userID string, foodID int64) error

	// List retrieves the user's favourites.
	List(ctx context.Context, userID string) ([]model.FavouriteFood, error)
}

// ReviewService defines operations for food reviews.
type ReviewService interface {
	// Add posts a review and refreshes the food's aggregated star.
	Add(ctx context.Context, userID string, foodID int64, req *model.ReviewRequest) (*model.Review, error)

	// ListByFood retrieves a food's reviews.
	ListByFood(ctx context.Context, foodID int64) ([]model.Review, error)
}

// AuthService defines account operations.
type AuthService interface {
	// Register creates an account and returns a signed token.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// GetProfile retrieves the caller's account.
	GetProfile(ctx context.Context, userID string) (*model.User, error)

	// UpdateProfile edits the caller's profile fields.
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.User, error)
}
