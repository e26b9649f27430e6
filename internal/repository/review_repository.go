package repository

import (
	"context"
	"fmt"

	"foodcourt/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// Create inserts a review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, food_id, user_id, user_name, rating, comment, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.FoodID,
		review.UserID,
		review.UserName,
		review.Rating,
		review.Comment,
		review.ImageURL,
		review.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("food_id", review.FoodID).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	r.logger.Debug().Int64("food_id", review.FoodID).Str("review_id", review.ID).Msg("review created")
	return nil
}

// ListByFood retrieves reviews for a food, newest first.
func (r *reviewRepository) ListByFood(ctx context.Context, foodID int64) ([]model.Review, error) {
	query := `
		SELECT id, food_id, user_id, user_name, rating, comment, image_url, created_at
		FROM reviews
		WHERE food_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, foodID)
	if err != nil {
		r.logger.Error().Err(err).Int64("food_id", foodID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		err := rows.Scan(&rv.ID, &rv.FoodID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.ImageURL, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// AverageRating computes the mean rating over a food's reviews.
func (r *reviewRepository) AverageRating(ctx context.Context, foodID int64) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE food_id = $1`,
		foodID,
	).Scan(&avg)
	if err != nil {
		r.logger.Error().Err(err).Int64("food_id", foodID).Msg("failed to compute average rating")
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}

	return avg, nil
}
