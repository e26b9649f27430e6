package service

import (
	"context"
	"fmt"
	"time"

	"foodcourt/internal/model"
	"foodcourt/internal/repository"

	"github.com/rs/zerolog"
)

// favouriteService implements FavouriteService.
type favouriteService struct {
	favouriteRepo repository.FavouriteRepository
	foodRepo      repository.FoodRepository
	logger        zerolog.Logger
}

// NewFavouriteService creates a new favourite service.
func NewFavouriteService(
	favouriteRepo repository.FavouriteRepository,
	foodRepo repository.FoodRepository,
	logger zerolog.Logger,
) FavouriteService {
	return &favouriteService{
		favouriteRepo: favouriteRepo,
		foodRepo:      foodRepo,
		logger:        logger.With().Str("service", "favourite").Logger(),
	}
}

// Add marks a food as a favourite for the user. The food's title, price and
// image are snapshotted at the time of the add. Re-adding an existing
// favourite is a no-op.
func (s *favouriteService) Add(ctx context.Context, userID string, foodID int64) error {
	food, err := s.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		return fmt.Errorf("failed to get food: %w", err)
	}
	if food == nil {
		return model.ErrFoodNotFound
	}

	fav := &model.FavouriteFood{
		UserID:    userID,
		FoodID:    food.ID,
		Title:     food.Title,
		UnitPrice: food.Price,
		ImagePath: food.ImagePath,
		Star:      food.Star,
		CreatedAt: time.Now(),
	}

	if err := s.favouriteRepo.Add(ctx, fav); err != nil {
		s.logger.Error().Err(err).Int64("food_id", foodID).Msg("failed to add favourite")
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

// Remove deletes a favourite. Removing a food that was never favourited is a
// no-op.
func (s *favouriteService) Remove(ctx context.Context, userID string, foodID int64) error {
	if err := s.favouriteRepo.Remove(ctx, userID, foodID); err != nil {
		s.logger.Error().Err(err).Int64("food_id", foodID).Msg("failed to remove favourite")
		return fmt.Errorf("failed to remove favourite: %w", err)
	}
	return nil
}

// List returns the user's favourites, most recent first.
func (s *favouriteService) List(ctx context.Context, userID string) ([]model.FavouriteFood, error) {
	favs, err := s.favouriteRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list favourites")
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	return favs, nil
}
