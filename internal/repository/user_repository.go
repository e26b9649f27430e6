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

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `id, email, password_hash, full_name, phone, address, birth_date, gender, balance, role, created_at`

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone, address, birth_date, gender, balance, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Phone,
		user.Address,
		user.BirthDate,
		user.Gender,
		user.Balance,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Str("user_id", user.ID).Msg("user created")
	return nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.getOne(ctx, query, email)
}

// UpdateProfile overwrites the editable profile fields.
func (r *userRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET full_name = $1, phone = $2, address = $3, birth_date = $4, gender = $5
		WHERE id = $6
	`

	tag, err := r.pool.Exec(ctx, query,
		user.FullName,
		user.Phone,
		user.Address,
		user.BirthDate,
		user.Gender,
		user.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update profile")
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ID)
	}

	return nil
}

// DebitBalance subtracts amount from the user's balance on the caller's
// transaction. The guard is in the WHERE clause so two concurrent debits
// cannot both pass a stale read.
func (r *userRepository) DebitBalance(ctx context.Context, tx pgx.Tx, userID string, amount float64) error {
	query := `
		UPDATE users
		SET balance = balance - $1
		WHERE id = $2 AND balance >= $1
	`

	tag, err := tx.Exec(ctx, query, amount, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to debit balance")
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInsufficientFunds
	}

	r.logger.Debug().Str("user_id", userID).Float64("amount", amount).Msg("balance debited")
	return nil
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Phone,
		&u.Address,
		&u.BirthDate,
		&u.Gender,
		&u.Balance,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}
