package repository

import (
	"context"
	"fmt"
	"time"

	"foodcourt/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// favouriteRepository implements the FavouriteRepository interface using PostgreSQL.
type favouriteRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFavouriteRepository creates a new PostgreSQL-backed favourite repository.
func NewFavouriteRepository(pool *pgxpool.Pool, logger zerolog.Logger) FavouriteRepository {
	return &favouriteRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "favourite").Logger(),
	}
}

// Add stores a favourite snapshot keyed by (user, food). Re-favouriting an
// already favourited food is a no-op.
func (r *favouriteRepository) Add(ctx context.Context, fav *model.FavouriteFood) error {
	query := `
		INSERT INTO favourites (user_id, food_id, title, unit_price, image_path, star, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, food_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		fav.UserID,
		fav.FoodID,
		fav.Title,
		fav.UnitPrice,
		fav.ImagePath,
		fav.Star,
		time.Now(),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", fav.UserID).Int64("food_id", fav.FoodID).Msg("failed to add favourite")
		return fmt.Errorf("failed to add favourite: %w", err)
	}

	return nil
}

// Remove deletes a favourite.
func (r *favouriteRepository) Remove(ctx context.Context, userID string, foodID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favourites WHERE user_id = $1 AND food_id = $2`,
		userID, foodID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Int64("food_id", foodID).Msg("failed to remove favourite")
		return fmt.Errorf("failed to remove favourite: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's favourites, newest first.
func (r *favouriteRepository) ListByUser(ctx context.Context, userID string) ([]model.FavouriteFood, error) {
	query := `
		SELECT user_id, food_id, title, unit_price, image_path, star, created_at
		FROM favourites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query favourites")
		return nil, fmt.Errorf("failed to query favourites: %w", err)
	}
	defer rows.Close()

	var favourites []model.FavouriteFood
	for rows.Next() {
		var f model.FavouriteFood
		err := rows.Scan(&f.UserID, &f.FoodID, &f.Title, &f.UnitPrice, &f.ImagePath, &f.Star, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favourite: %w", err)
		}
		favourites = append(favourites, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favourites: %w", err)
	}

	return favourites, nil
}
