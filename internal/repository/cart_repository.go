package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetLines retrieves all cart lines for a user.
func (r *cartRepository) GetLines(ctx context.Context, userID string) ([]model.CartLine, error) {
	query := `
		SELECT user_id, food_id, title, unit_price, image_path, quantity, created_at, updated_at
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var line model.CartLine
		err := rows.Scan(
			&line.UserID,
			&line.FoodID,
			&line.Title,
			&line.UnitPrice,
			&line.ImagePath,
			&line.Quantity,
			&line.CreatedAt,
			&line.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// GetLine retrieves one cart line.
func (r *cartRepository) GetLine(ctx context.Context, userID string, foodID int64) (*model.CartLine, error) {
	query := `
		SELECT user_id, food_id, title, unit_price, image_path, quantity, created_at, updated_at
		FROM cart_lines
		WHERE user_id = $1 AND food_id = $2
	`

	var line model.CartLine
	err := r.pool.QueryRow(ctx, query, userID, foodID).Scan(
		&line.UserID,
		&line.FoodID,
		&line.Title,
		&line.UnitPrice,
		&line.ImagePath,
		&line.Quantity,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Int64("food_id", foodID).Msg("failed to query cart line")
		return nil, fmt.Errorf("failed to query cart line: %w", err)
	}

	return &line, nil
}

// Upsert inserts the line, or adds its quantity to an existing row.
func (r *cartRepository) Upsert(ctx context.Context, line *model.CartLine) error {
	query := `
		INSERT INTO cart_lines (user_id, food_id, title, unit_price, image_path, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, food_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	_, err := r.pool.Exec(ctx, query,
		line.UserID,
		line.FoodID,
		line.Title,
		line.UnitPrice,
		line.ImagePath,
		line.Quantity,
		now,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", line.UserID).Int64("food_id", line.FoodID).Msg("failed to upsert cart line")
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}

	r.logger.Debug().Str("user_id", line.UserID).Int64("food_id", line.FoodID).Msg("cart line upserted")
	return nil
}

// SetQuantity overwrites the quantity of an existing line.
func (r *cartRepository) SetQuantity(ctx context.Context, userID string, foodID int64, quantity int) error {
	query := `
		UPDATE cart_lines
		SET quantity = $1, updated_at = $2
		WHERE user_id = $3 AND food_id = $4
	`

	tag, err := r.pool.Exec(ctx, query, quantity, time.Now(), userID, foodID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Int64("food_id", foodID).Msg("failed to set quantity")
		return fmt.Errorf("failed to set quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartLineNotFound
	}

	return nil
}

// Delete removes a line entirely.
func (r *cartRepository) Delete(ctx context.Context, userID string, foodID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_lines WHERE user_id = $1 AND food_id = $2`,
		userID, foodID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Int64("food_id", foodID).Msg("failed to delete cart line")
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartLineNotFound
	}

	r.logger.Debug().Str("user_id", userID).Int64("food_id", foodID).Msg("cart line deleted")
	return nil
}
