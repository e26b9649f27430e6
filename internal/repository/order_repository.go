package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foodcourt/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
// Active orders live in orders/order_lines; archived orders in
// history_orders/history_order_lines with the same shape and the same IDs.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts an order and its line snapshots within the transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, user_name, subtotal, tax, delivery_fee, status, address, payment_method, bank_payment_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	bankInfo, err := marshalBankInfo(order.BankPaymentInfo)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.UserName,
		order.Subtotal,
		order.Tax,
		order.DeliveryFee,
		order.Status,
		order.Address,
		order.PaymentMethod,
		bankInfo,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := r.insertLines(ctx, tx, "order_lines", order.ID, order.Lines); err != nil {
		return err
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Int("line_count", len(order.Lines)).
		Msg("order created")

	return nil
}

// GetActive retrieves one active order with its lines.
func (r *orderRepository) GetActive(ctx context.Context, userID string, orderID uuid.UUID) (*model.Order, error) {
	return r.getOne(ctx, "orders", "order_lines", userID, orderID)
}

// GetHistory retrieves one archived order.
func (r *orderRepository) GetHistory(ctx context.Context, userID string, orderID uuid.UUID) (*model.Order, error) {
	return r.getOne(ctx, "history_orders", "history_order_lines", userID, orderID)
}

// ListActiveByUser retrieves a user's active orders, newest first.
func (r *orderRepository) ListActiveByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, orderColumns)
	return r.list(ctx, "order_lines", query, userID)
}

// ListActive retrieves active orders across all users, optionally filtered
// by status. An empty status means no filter.
func (r *orderRepository) ListActive(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if status == "" {
		query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC`, orderColumns)
		return r.list(ctx, "order_lines", query)
	}
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE status = $1 ORDER BY created_at DESC`, orderColumns)
	return r.list(ctx, "order_lines", query, status)
}

// ListHistoryByUser retrieves a user's archived orders, newest first.
func (r *orderRepository) ListHistoryByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM history_orders WHERE user_id = $1 ORDER BY created_at DESC`, orderColumns)
	return r.list(ctx, "history_order_lines", query, userID)
}

// ListHistory retrieves every archived order.
func (r *orderRepository) ListHistory(ctx context.Context) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM history_orders ORDER BY created_at DESC`, orderColumns)
	return r.list(ctx, "history_order_lines", query)
}

// UpdateStatus overwrites the status of an active order.
func (r *orderRepository) UpdateStatus(ctx context.Context, userID string, orderID uuid.UUID, status model.OrderStatus) error {
	query := `UPDATE orders SET status = $1 WHERE user_id = $2 AND id = $3`

	tag, err := r.pool.Exec(ctx, query, status, userID, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to update status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Debug().
		Str("order_id", orderID.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// CopyToHistory writes the full order payload into the history collection
// under the same ID. ON CONFLICT DO NOTHING makes a re-copy of the same
// order a safe no-op: the payload is identical by construction.
func (r *orderRepository) CopyToHistory(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO history_orders (id, user_id, user_name, subtotal, tax, delivery_fee, status, address, payment_method, bank_payment_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	bankInfo, err := marshalBankInfo(order.BankPaymentInfo)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.UserName,
		order.Subtotal,
		order.Tax,
		order.DeliveryFee,
		order.Status,
		order.Address,
		order.PaymentMethod,
		bankInfo,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to copy order to history")
		return fmt.Errorf("failed to copy order to history: %w", err)
	}

	// Lines follow the header; skip them when the header was already there.
	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("order_id", order.ID.String()).Msg("order already present in history")
		return nil
	}

	return r.insertLines(ctx, tx, "history_order_lines", order.ID, order.Lines)
}

// DeleteActive removes an order from the active set within the transaction.
func (r *orderRepository) DeleteActive(ctx context.Context, tx pgx.Tx, userID string, orderID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to delete order lines")
		return fmt.Errorf("failed to delete order lines: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE user_id = $1 AND id = $2`, userID, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

const orderColumns = `id, user_id, user_name, subtotal, tax, delivery_fee, status, address, payment_method, bank_payment_info, created_at`

func (r *orderRepository) getOne(ctx context.Context, table, linesTable, userID string, orderID uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 AND id = $2`, orderColumns, table)

	order, err := scanOrder(r.pool.QueryRow(ctx, query, userID, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	lines, err := r.loadLines(ctx, linesTable, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[order.ID]

	return order, nil
}

func (r *orderRepository) list(ctx context.Context, linesTable, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var ids []uuid.UUID
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	lines, err := r.loadLines(ctx, linesTable, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}

	return orders, nil
}

func (r *orderRepository) loadLines(ctx context.Context, table string, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderLine, error) {
	query := fmt.Sprintf(`
		SELECT order_id, food_id, title, unit_price, image_path, quantity
		FROM %s
		WHERE order_id = ANY($1)
		ORDER BY food_id
	`, table)

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order lines")
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[uuid.UUID][]model.OrderLine, len(orderIDs))
	for rows.Next() {
		var line model.OrderLine
		err := rows.Scan(
			&line.OrderID,
			&line.FoodID,
			&line.Title,
			&line.UnitPrice,
			&line.ImagePath,
			&line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines[line.OrderID] = append(lines[line.OrderID], line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return lines, nil
}

func (r *orderRepository) insertLines(ctx context.Context, tx pgx.Tx, table string, orderID uuid.UUID, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (order_id, food_id, title, unit_price, image_path, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, table)

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query, orderID, line.FoodID, line.Title, line.UnitPrice, line.ImagePath, line.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range lines {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to insert order line")
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var bankInfo []byte
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.UserName,
		&o.Subtotal,
		&o.Tax,
		&o.DeliveryFee,
		&o.Status,
		&o.Address,
		&o.PaymentMethod,
		&bankInfo,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(bankInfo) > 0 {
		var info model.BankPaymentInfo
		if err := json.Unmarshal(bankInfo, &info); err != nil {
			return nil, fmt.Errorf("failed to decode bank payment info: %w", err)
		}
		o.BankPaymentInfo = &info
	}

	return &o, nil
}

func marshalBankInfo(info *model.BankPaymentInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bank payment info: %w", err)
	}
	return data, nil
}
