package service

import (
	"context"
	"fmt"
	"time"

	"foodcourt/internal/model"
	"foodcourt/internal/pricing"
	"foodcourt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo  repository.CartRepository
	foodRepo  repository.FoodRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	logger    zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	foodRepo repository.FoodRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:  cartRepo,
		foodRepo:  foodRepo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		logger:    logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart retrieves the user's cart lines.
func (s *cartService) GetCart(ctx context.Context, userID string) ([]model.CartLine, error) {
	lines, err := s.cartRepo.GetLines(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return lines, nil
}

// Add puts a food into the cart, merging quantities with any existing line.
// The line snapshots the food's current price and title.
func (s *cartService) Add(ctx context.Context, userID string, req *model.AddCartRequest) (*model.CartLine, error) {
	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	food, err := s.foodRepo.GetByID(ctx, req.FoodID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up food: %w", err)
	}
	if food == nil {
		return nil, model.ErrFoodNotFound
	}

	line := &model.CartLine{
		UserID:    userID,
		FoodID:    food.ID,
		Title:     food.Title,
		UnitPrice: food.Price,
		ImagePath: food.ImagePath,
		Quantity:  req.Quantity,
	}

	if err := s.cartRepo.Upsert(ctx, line); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int64("food_id", food.ID).Msg("failed to add to cart")
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int64("food_id", food.ID).
		Int("quantity", req.Quantity).
		Msg("food added to cart")

	return s.cartRepo.GetLine(ctx, userID, food.ID)
}

// Increase bumps a line's quantity by one.
func (s *cartService) Increase(ctx context.Context, userID string, foodID int64) (*model.CartLine, error) {
	return s.adjustQuantity(ctx, userID, foodID, pricing.Increase)
}

// Decrease lowers a line's quantity by one, never below one. Removing a
// line entirely is a separate, explicit operation.
func (s *cartService) Decrease(ctx context.Context, userID string, foodID int64) (*model.CartLine, error) {
	return s.adjustQuantity(ctx, userID, foodID, pricing.Decrease)
}

// Remove deletes a line from the cart entirely. The caller is expected to
// drop the food's key from its session selection as well.
func (s *cartService) Remove(ctx context.Context, userID string, foodID int64) error {
	if err := s.cartRepo.Delete(ctx, userID, foodID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Int64("food_id", foodID).Msg("cart line removed")
	return nil
}

// Checkout places an order from the selected cart lines. The order freezes
// line snapshots and totals at creation time; later cart edits do not touch
// it. With bank payment, the user's balance is debited before the order is
// created.
func (s *cartService) Checkout(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.Order, error) {
	lines, err := s.cartRepo.GetLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	selection := make(model.Selection, len(req.SelectedFoodIDs))
	for _, id := range req.SelectedFoodIDs {
		selection[id] = true
	}

	var selected []model.CartLine
	for _, line := range lines {
		if selection[line.FoodID] {
			selected = append(selected, line)
		}
	}
	if len(selected) == 0 {
		return nil, model.ErrEmptySelection
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	userName := "Unknown"
	if user != nil {
		userName = user.FullName
	}

	subtotal := pricing.SelectedTotal(lines, selection)
	tax := pricing.Tax(subtotal)

	order := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		UserName:      userName,
		Lines:         snapshotLines(selected),
		Subtotal:      subtotal,
		Tax:           tax,
		DeliveryFee:   pricing.DeliveryFee,
		Status:        model.StatusWaitConfirmed,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now(),
	}
	if req.PaymentMethod == model.PaymentBank {
		order.BankPaymentInfo = req.BankPaymentInfo
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// The debit shares the order transaction: a failed insert or commit
	// rolls the charge back with it.
	if req.PaymentMethod == model.PaymentBank {
		if err = s.userRepo.DebitBalance(ctx, tx, userID, order.Total()); err != nil {
			return nil, err
		}
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Int("line_count", len(order.Lines)).
		Float64("subtotal", order.Subtotal).
		Msg("order placed")

	return order, nil
}

func (s *cartService) adjustQuantity(ctx context.Context, userID string, foodID int64, adjust func(int) int) (*model.CartLine, error) {
	line, err := s.cartRepo.GetLine(ctx, userID, foodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart line: %w", err)
	}
	if line == nil {
		return nil, model.ErrCartLineNotFound
	}

	next := adjust(line.Quantity)
	if next == line.Quantity {
		return line, nil
	}

	if err := s.cartRepo.SetQuantity(ctx, userID, foodID, next); err != nil {
		return nil, err
	}
	line.Quantity = next

	return line, nil
}

func snapshotLines(lines []model.CartLine) []model.OrderLine {
	snapshots := make([]model.OrderLine, len(lines))
	for i, line := range lines {
		snapshots[i] = model.OrderLine{
			FoodID:    line.FoodID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			ImagePath: line.ImagePath,
			Quantity:  line.Quantity,
		}
	}
	return snapshots
}
