package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name     TEXT NOT NULL DEFAULT '',
			phone         TEXT NOT NULL DEFAULT '',
			address       TEXT NOT NULL DEFAULT '',
			birth_date    TEXT NOT NULL DEFAULT '',
			gender        TEXT NOT NULL DEFAULT '',
			balance       DOUBLE PRECISION NOT NULL DEFAULT 0,
			role          TEXT NOT NULL DEFAULT 'USER',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS categories (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			image_path TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS foods (
			id          BIGINT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       DOUBLE PRECISION NOT NULL,
			image_path  TEXT NOT NULL DEFAULT '',
			category_id TEXT NOT NULL DEFAULT '',
			best_food   BOOLEAN NOT NULL DEFAULT false,
			calorie     INTEGER NOT NULL DEFAULT 0,
			star        DOUBLE PRECISION NOT NULL DEFAULT 0,
			time_value  INTEGER NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS cart_lines (
			user_id    TEXT NOT NULL,
			food_id    BIGINT NOT NULL,
			title      TEXT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			image_path TEXT NOT NULL DEFAULT '',
			quantity   INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, food_id)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id                UUID PRIMARY KEY,
			user_id           TEXT NOT NULL,
			user_name         TEXT NOT NULL DEFAULT '',
			subtotal          DOUBLE PRECISION NOT NULL,
			tax               DOUBLE PRECISION NOT NULL,
			delivery_fee      DOUBLE PRECISION NOT NULL,
			status            TEXT NOT NULL,
			address           TEXT NOT NULL DEFAULT '',
			payment_method    TEXT NOT NULL DEFAULT '',
			bank_payment_info JSONB,
			created_at        TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS order_lines (
			order_id   UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			food_id    BIGINT NOT NULL,
			title      TEXT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			image_path TEXT NOT NULL DEFAULT '',
			quantity   INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS history_orders (
			id                UUID PRIMARY KEY,
			user_id           TEXT NOT NULL,
			user_name         TEXT NOT NULL DEFAULT '',
			subtotal          DOUBLE PRECISION NOT NULL,
			tax               DOUBLE PRECISION NOT NULL,
			delivery_fee      DOUBLE PRECISION NOT NULL,
			status            TEXT NOT NULL,
			address           TEXT NOT NULL DEFAULT '',
			payment_method    TEXT NOT NULL DEFAULT '',
			bank_payment_info JSONB,
			created_at        TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS history_order_lines (
			order_id   UUID NOT NULL REFERENCES history_orders(id) ON DELETE CASCADE,
			food_id    BIGINT NOT NULL,
			title      TEXT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			image_path TEXT NOT NULL DEFAULT '',
			quantity   INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS favourites (
			user_id    TEXT NOT NULL,
			food_id    BIGINT NOT NULL,
			title      TEXT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			image_path TEXT NOT NULL DEFAULT '',
			star       DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, food_id)
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id         TEXT PRIMARY KEY,
			food_id    BIGINT NOT NULL,
			user_id    TEXT NOT NULL,
			user_name  TEXT NOT NULL DEFAULT '',
			rating     DOUBLE PRECISION NOT NULL,
			comment    TEXT NOT NULL DEFAULT '',
			image_url  TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB removes all rows from every table.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"order_lines", "orders",
		"history_order_lines", "history_orders",
		"cart_lines", "favourites", "reviews", "foods", "categories", "users",
	}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("failed to clean table %s: %v", table, err)
		}
	}
}

// SeedFoods inserts a small menu for testing.
func SeedFoods(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	foods := []struct {
		id    int64
		title string
		price float64
	}{
		{1, "Pizza", 10.00},
		{2, "Soda", 3.00},
		{3, "Burger", 8.50},
	}
	for _, f := range foods {
		_, err := pool.Exec(ctx, `
			INSERT INTO foods (id, title, price, created_at)
			VALUES ($1, $2, $3, now())`,
			f.id, f.title, f.price,
		)
		if err != nil {
			t.Fatalf("failed to seed food %q: %v", f.title, err)
		}
	}
}
