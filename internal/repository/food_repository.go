package repository

import (
	"context"
	"errors"
	"fmt"

	"foodcourt/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// foodRepository implements the FoodRepository interface using PostgreSQL.
type foodRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFoodRepository creates a new PostgreSQL-backed food repository.
func NewFoodRepository(pool *pgxpool.Pool, logger zerolog.Logger) FoodRepository {
	return &foodRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "food").Logger(),
	}
}

const foodColumns = `id, title, description, price, image_path, category_id, best_food, calorie, star, time_value, created_at`

func scanFood(row pgx.Row) (*model.Food, error) {
	var f model.Food
	err := row.Scan(
		&f.ID,
		&f.Title,
		&f.Description,
		&f.Price,
		&f.ImagePath,
		&f.CategoryID,
		&f.BestFood,
		&f.Calorie,
		&f.Star,
		&f.TimeValue,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetAll retrieves foods with pagination support.
func (r *foodRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Food, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM foods
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, foodColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query foods")
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	return collectFoods(rows)
}

// GetByID retrieves a single food by its ID.
func (r *foodRepository) GetByID(ctx context.Context, id int64) (*model.Food, error) {
	query := fmt.Sprintf(`SELECT %s FROM foods WHERE id = $1`, foodColumns)

	food, err := scanFood(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("food_id", id).Msg("food not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("food_id", id).Msg("failed to query food")
		return nil, fmt.Errorf("failed to query food: %w", err)
	}

	return food, nil
}

// Search retrieves foods whose title contains the query, case-insensitively.
func (r *foodRepository) Search(ctx context.Context, search string) ([]model.Food, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM foods
		WHERE title ILIKE '%%' || $1 || '%%'
		ORDER BY title
	`, foodColumns)

	rows, err := r.pool.Query(ctx, query, search)
	if err != nil {
		r.logger.Error().Err(err).Str("query", search).Msg("failed to search foods")
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}
	defer rows.Close()

	return collectFoods(rows)
}

// Create inserts a new food into the catalogue.
func (r *foodRepository) Create(ctx context.Context, food *model.Food) error {
	query := `
		INSERT INTO foods (id, title, description, price, image_path, category_id, best_food, calorie, star, time_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		food.ID,
		food.Title,
		food.Description,
		food.Price,
		food.ImagePath,
		food.CategoryID,
		food.BestFood,
		food.Calorie,
		food.Star,
		food.TimeValue,
		food.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("food_id", food.ID).Msg("failed to create food")
		return fmt.Errorf("failed to create food: %w", err)
	}

	r.logger.Debug().Int64("food_id", food.ID).Msg("food created")
	return nil
}

// UpdateStar sets the aggregated review star for a food.
func (r *foodRepository) UpdateStar(ctx context.Context, foodID int64, star float64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE foods SET star = $1 WHERE id = $2`, star, foodID)
	if err != nil {
		r.logger.Error().Err(err).Int64("food_id", foodID).Msg("failed to update star")
		return fmt.Errorf("failed to update star: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrFoodNotFound
	}
	return nil
}

// GetCategories retrieves all dashboard categories.
func (r *foodRepository) GetCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, image_path FROM categories ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ImagePath); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func collectFoods(rows pgx.Rows) ([]model.Food, error) {
	var foods []model.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, *food)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foods: %w", err)
	}

	return foods, nil
}
