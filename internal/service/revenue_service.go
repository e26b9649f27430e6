package service

import (
	"context"
	"fmt"
	"time"

	"foodcourt/internal/repository"
	"foodcourt/internal/revenue"

	"github.com/rs/zerolog"
)

// revenueService implements RevenueService. Figures are recomputed from the
// order history on every call rather than maintained incrementally, so the
// report always reflects the archive as it stands.
type revenueService struct {
	orderRepo repository.OrderRepository
	now       func() time.Time
	logger    zerolog.Logger
}

// NewRevenueService creates a new revenue service.
func NewRevenueService(orderRepo repository.OrderRepository, logger zerolog.Logger) RevenueService {
	return &revenueService{
		orderRepo: orderRepo,
		now:       time.Now,
		logger:    logger.With().Str("service", "revenue").Logger(),
	}
}

// Daily reports revenue for the trailing seven days, oldest day first.
func (s *revenueService) Daily(ctx context.Context) ([]revenue.Bucket, error) {
	history, err := s.orderRepo.ListHistory(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load order history")
		return nil, fmt.Errorf("failed to compute daily revenue: %w", err)
	}
	return revenue.Daily(history, s.now()), nil
}

// Monthly reports revenue for the trailing twelve months, oldest month first.
func (s *revenueService) Monthly(ctx context.Context) ([]revenue.Bucket, error) {
	history, err := s.orderRepo.ListHistory(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load order history")
		return nil, fmt.Errorf("failed to compute monthly revenue: %w", err)
	}
	return revenue.Monthly(history, s.now()), nil
}
