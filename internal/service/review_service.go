package service

import (
	"context"
	"fmt"
	"time"

	"foodcourt/internal/model"
	"foodcourt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	foodRepo   repository.FoodRepository
	userRepo   repository.UserRepository
	logger     zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	foodRepo repository.FoodRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		foodRepo:   foodRepo,
		userRepo:   userRepo,
		logger:     logger.With().Str("service", "review").Logger(),
	}
}

// Add posts a review and refreshes the food's aggregated star rating from
// the full set of reviews.
func (s *reviewService) Add(ctx context.Context, userID string, foodID int64, req *model.ReviewRequest) (*model.Review, error) {
	if req.Rating < 0 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	food, err := s.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}
	if food == nil {
		return nil, model.ErrFoodNotFound
	}

	userName := "Unknown"
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil && user != nil {
		userName = user.FullName
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		FoodID:    foodID,
		UserID:    userID,
		UserName:  userName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error().Err(err).Int64("food_id", foodID).Msg("failed to create review")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Best effort: a stale star is acceptable, a lost review is not.
	avg, err := s.reviewRepo.AverageRating(ctx, foodID)
	if err == nil {
		if err := s.foodRepo.UpdateStar(ctx, foodID, avg); err != nil {
			s.logger.Warn().Err(err).Int64("food_id", foodID).Msg("failed to refresh star rating")
		}
	} else {
		s.logger.Warn().Err(err).Int64("food_id", foodID).Msg("failed to compute average rating")
	}

	s.logger.Info().
		Str("review_id", review.ID).
		Int64("food_id", foodID).
		Msg("review posted")

	return review, nil
}

// ListByFood retrieves a food's reviews, most recent first.
func (s *reviewService) ListByFood(ctx context.Context, foodID int64) ([]model.Review, error) {
	reviews, err := s.reviewRepo.ListByFood(ctx, foodID)
	if err != nil {
		s.logger.Error().Err(err).Int64("food_id", foodID).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
