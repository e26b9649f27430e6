package service

import (
	"context"
	"fmt"
	"time"

	"foodcourt/internal/email"
	"foodcourt/internal/model"
	"foodcourt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	sender    email.Sender
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	sender email.Sender,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		sender:    sender,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// ListMine retrieves the caller's active orders.
func (s *orderService) ListMine(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListMyHistory retrieves the caller's archived orders.
func (s *orderService) ListMyHistory(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListHistoryByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list history")
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return orders, nil
}

// ListAll retrieves active orders across users, optionally filtered by status.
func (s *orderService) ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("unknown status filter %q", status))
	}

	orders, err := s.orderRepo.ListActive(ctx, status)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all orders")
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	return orders, nil
}

// ListAllHistory retrieves every archived order.
func (s *orderService) ListAllHistory(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListHistory(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list full history")
		return nil, fmt.Errorf("failed to list full history: %w", err)
	}
	return orders, nil
}

// Advance moves an active order one status forward. A plain advance from
// Received is rejected: relocating the order into history is a distinct
// operation and must not be conflated with a status update.
func (s *orderService) Advance(ctx context.Context, ownerID string, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetActive(ctx, ownerID, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	next, ok := model.NextStatus(order.Status)
	if !ok {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("status", string(order.Status)).
			Msg("advance rejected")
		return nil, model.ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, ownerID, orderID, next); err != nil {
		return nil, err
	}
	order.Status = next

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(next)).
		Msg("order advanced")

	return order, nil
}

// Archive relocates a Received order into the owner's history: the full
// payload is copied into the history collection and, only once the copy is
// in, the active record is deleted. Both steps run in one transaction, so a
// failure at either point leaves the order fully active. Archiving an order
// that is already in history is a safe no-op reported as ErrAlreadyArchived.
func (s *orderService) Archive(ctx context.Context, ownerID string, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetActive(ctx, ownerID, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		archived, err := s.orderRepo.GetHistory(ctx, ownerID, orderID)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if archived != nil {
			return model.ErrAlreadyArchived
		}
		return model.ErrOrderNotFound
	}

	if order.Status != model.StatusReceived {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("status", string(order.Status)).
			Msg("archive rejected")
		return model.ErrNotReceived
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to archive order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CopyToHistory(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to copy order to history")
		return fmt.Errorf("failed to archive order: %w", err)
	}

	if err = s.orderRepo.DeleteActive(ctx, tx, ownerID, orderID); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to delete active order")
		return fmt.Errorf("failed to archive order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to commit archive")
		return fmt.Errorf("failed to archive order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("user_id", ownerID).
		Msg("order archived")

	s.sendReceipt(order)

	return nil
}

// sendReceipt emails the customer their receipt after the order reaches its
// terminal state. Fire-and-forget: a failure is logged, never surfaced, and
// the send outlives the originating request.
func (s *orderService) sendReceipt(order *model.Order) {
	if s.sender == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.userRepo.GetByID(ctx, order.UserID)
		if err != nil || user == nil || user.Email == "" {
			s.logger.Warn().
				Str("order_id", order.ID.String()).
				Msg("no recipient for receipt email")
			return
		}

		if err := s.sender.SendReceipt(ctx, user.Email, user.FullName, order); err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", order.ID.String()).
				Msg("failed to send receipt email")
			return
		}

		s.logger.Info().
			Str("order_id", order.ID.String()).
			Str("to", user.Email).
			Msg("receipt email sent")
	}()
}
