package repository

import (
	"context"

	"foodcourt/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FoodRepository defines the interface for menu catalogue data access.
type FoodRepository interface {
	// GetAll retrieves foods with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Food, error)

	// GetByID retrieves a single food by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Food, error)

	// Search retrieves foods whose title contains the query, case-insensitively.
	Search(ctx context.Context, query string) ([]model.Food, error)

	// Create inserts a new food into the catalogue.
	Create(ctx context.Context, food *model.Food) error

	// UpdateStar sets the aggregated review star for a food.
	UpdateStar(ctx context.Context, foodID int64, star float64) error

	// GetCategories retrieves all dashboard categories.
	GetCategories(ctx context.Context) ([]model.Category, error)
}

// CartRepository defines the interface for per-user cart data access.
// Rows are keyed by (user, food); a quantity of zero is never stored.
type CartRepository interface {
	// GetLines retrieves all cart lines for a user.
	GetLines(ctx context.Context, userID string) ([]model.CartLine, error)

	// GetLine retrieves one cart line. Returns nil when absent.
	GetLine(ctx context.Context, userID string, foodID int64) (*model.CartLine, error)

	// Upsert inserts the line, or adds its quantity to an existing row
	// for the same user and food.
	Upsert(ctx context.Context, line *model.CartLine) error

	// SetQuantity overwrites the quantity of an existing line.
	SetQuantity(ctx context.Context, userID string, foodID int64, quantity int) error

	// Delete removes a line entirely.
	Delete(ctx context.Context, userID string, foodID int64) error
}

// OrderRepository defines the interface for active and archived orders.
// The archive move is sequenced by the service: copy into history first,
// delete from the active set only once the copy is confirmed, both inside
// one transaction.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts an order and its line snapshots within the transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetActive retrieves one active order with its lines. Returns nil when absent.
	GetActive(ctx context.Context, userID string, orderID uuid.UUID) (*model.Order, error)

	// ListActiveByUser retrieves a user's active orders, newest first.
	ListActiveByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListActive retrieves active orders across all users, optionally
	// filtered by status. Used by the admin dashboard.
	ListActive(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	// UpdateStatus overwrites the status of an active order.
	UpdateStatus(ctx context.Context, userID string, orderID uuid.UUID, status model.OrderStatus) error

	// CopyToHistory writes the full order payload into the history
	// collection under the same ID, within the transaction. Re-copying an
	// already archived order is a no-op.
	CopyToHistory(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// DeleteActive removes an order from the active set within the transaction.
	DeleteActive(ctx context.Context, tx pgx.Tx, userID string, orderID uuid.UUID) error

	// GetHistory retrieves one archived order. Returns nil when absent.
	GetHistory(ctx context.Context, userID string, orderID uuid.UUID) (*model.Order, error)

	// ListHistoryByUser retrieves a user's archived orders, newest first.
	ListHistoryByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListHistory retrieves every archived order. Revenue reporting reads
	// exactly this set, nothing else.
	ListHistory(ctx context.Context) ([]model.Order, error)
}

// UserRepository defines the interface for account data access.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateProfile overwrites the editable profile fields.
	UpdateProfile(ctx context.Context, user *model.User) error

	// DebitBalance subtracts amount from the user's balance within the
	// given transaction, failing with model.ErrInsufficientFunds when it
	// would go negative. Runs on the caller's transaction so the debit
	// commits or rolls back together with the rest of the checkout.
	DebitBalance(ctx context.Context, tx pgx.Tx, userID string, amount float64) error
}

// FavouriteRepository defines the interface for per-user favourite foods.
type FavouriteRepository interface {
	// Add stores a favourite snapshot keyed by (user, food).
	Add(ctx context.Context, fav *model.FavouriteFood) error

	// Remove deletes a favourite.
	Remove(ctx context.Context, userID string, foodID int64) error

	// ListByUser retrieves a user's favourites, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.FavouriteFood, error)
}

// ReviewRepository defines the interface for food reviews.
type ReviewRepository interface {
	// Create inserts a review.
	Create(ctx context.Context, review *model.Review) error

	// ListByFood retrieves reviews for a food, newest first.
	ListByFood(ctx context.Context, foodID int64) ([]model.Review, error)

	// AverageRating computes the mean rating over a food's reviews.
	// Returns 0 when the food has no reviews.
	AverageRating(ctx context.Context, foodID int64) (float64, error)
}
