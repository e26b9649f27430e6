package service

import (
	"context"
	"fmt"

	"foodcourt/internal/model"
	"foodcourt/internal/repository"

	"github.com/rs/zerolog"
)

// foodService implements FoodService.
type foodService struct {
	foodRepo repository.FoodRepository
	logger   zerolog.Logger
}

// NewFoodService creates a new food service.
func NewFoodService(foodRepo repository.FoodRepository, logger zerolog.Logger) FoodService {
	return &foodService{
		foodRepo: foodRepo,
		logger:   logger.With().Str("service", "food").Logger(),
	}
}

// GetAll retrieves foods with pagination.
func (s *foodService) GetAll(ctx context.Context, limit, offset int) ([]model.Food, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	foods, err := s.foodRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get foods")
		return nil, fmt.Errorf("failed to get foods: %w", err)
	}

	return foods, nil
}

// GetByID retrieves a single food by ID.
func (s *foodService) GetByID(ctx context.Context, id int64) (*model.Food, error) {
	food, err := s.foodRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("food_id", id).Msg("failed to get food")
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	return food, nil
}

// Search retrieves foods matching a title query.
func (s *foodService) Search(ctx context.Context, query string) ([]model.Food, error) {
	foods, err := s.foodRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search foods")
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}

	return foods, nil
}

// Create adds a food to the catalogue.
func (s *foodService) Create(ctx context.Context, food *model.Food) error {
	if err := s.foodRepo.Create(ctx, food); err != nil {
		s.logger.Error().Err(err).Str("title", food.Title).Msg("failed to create food")
		return fmt.Errorf("failed to create food: %w", err)
	}

	s.logger.Info().Int64("food_id", food.ID).Str("title", food.Title).Msg("food created")
	return nil
}

// GetCategories retrieves all dashboard categories.
func (s *foodService) GetCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.foodRepo.GetCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}
