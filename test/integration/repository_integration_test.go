package integration

import (
	"context"
	"testing"
	"time"

	"foodcourt/internal/model"
	"foodcourt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewFoodRepository(testDB.Pool, zerolog.Nop())

	t.Run("Create and GetByID", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		food := &model.Food{
			ID:        1,
			Title:     "Pizza",
			Price:     10.00,
			Calorie:   850,
			Star:      4.5,
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(ctx, food))

		got, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Pizza", got.Title)
		assert.Equal(t, 10.00, got.Price)
	})

	t.Run("GetByID absent returns nil", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		got, err := repo.GetByID(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Search is case-insensitive", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedFoods(t, testDB.Pool)

		foods, err := repo.Search(ctx, "piz")
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, "Pizza", foods[0].Title)
	})

	t.Run("UpdateStar", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedFoods(t, testDB.Pool)

		require.NoError(t, repo.UpdateStar(ctx, 1, 4.8))

		got, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 4.8, got.Star)

		assert.Equal(t, model.ErrFoodNotFound, repo.UpdateStar(ctx, 404, 4.8))
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewCartRepository(testDB.Pool, zerolog.Nop())

	t.Run("Upsert merges quantities", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		line := &model.CartLine{
			UserID:    "u1",
			FoodID:    1,
			Title:     "Pizza",
			UnitPrice: 10.00,
			Quantity:  2,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, repo.Upsert(ctx, line))
		require.NoError(t, repo.Upsert(ctx, line))

		got, err := repo.GetLine(ctx, "u1", 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 4, got.Quantity)
	})

	t.Run("SetQuantity and Delete", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		line := &model.CartLine{
			UserID: "u1", FoodID: 1, Title: "Pizza", UnitPrice: 10.00, Quantity: 2,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		require.NoError(t, repo.Upsert(ctx, line))

		require.NoError(t, repo.SetQuantity(ctx, "u1", 1, 5))
		got, err := repo.GetLine(ctx, "u1", 1)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Quantity)

		require.NoError(t, repo.Delete(ctx, "u1", 1))
		got, err = repo.GetLine(ctx, "u1", 1)
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.Equal(t, model.ErrCartLineNotFound, repo.Delete(ctx, "u1", 1))
	})

	t.Run("Carts are isolated per user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, repo.Upsert(ctx, &model.CartLine{
			UserID: "u1", FoodID: 1, Title: "Pizza", UnitPrice: 10.00, Quantity: 1,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}))

		lines, err := repo.GetLines(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewOrderRepository(testDB.Pool, zerolog.Nop())

	newOrder := func(status model.OrderStatus) *model.Order {
		return &model.Order{
			ID:       uuid.New(),
			UserID:   "u1",
			UserName: "Jane",
			Lines: []model.OrderLine{
				{FoodID: 1, Title: "Pizza", UnitPrice: 25.00, Quantity: 2},
			},
			Subtotal:      50.00,
			Tax:           1.00,
			DeliveryFee:   10.00,
			Status:        status,
			Address:       "1 Main St",
			PaymentMethod: model.PaymentCashOnDelivery,
			CreatedAt:     time.Now(),
		}
	}

	createOrder := func(t *testing.T, order *model.Order) {
		t.Helper()
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx, order))
		require.NoError(t, tx.Commit(ctx))
	}

	t.Run("Create and GetActive with lines", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(model.StatusWaitConfirmed)
		createOrder(t, order)

		got, err := repo.GetActive(ctx, "u1", order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.StatusWaitConfirmed, got.Status)
		assert.Equal(t, 50.00, got.Subtotal)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, "Pizza", got.Lines[0].Title)
		assert.Equal(t, 2, got.Lines[0].Quantity)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(model.StatusWaitConfirmed)
		createOrder(t, order)

		require.NoError(t, repo.UpdateStatus(ctx, "u1", order.ID, model.StatusShipping))

		got, err := repo.GetActive(ctx, "u1", order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusShipping, got.Status)
	})

	t.Run("Archive moves the order with lines intact", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(model.StatusReceived)
		createOrder(t, order)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CopyToHistory(ctx, tx, order))
		require.NoError(t, repo.DeleteActive(ctx, tx, "u1", order.ID))
		require.NoError(t, tx.Commit(ctx))

		active, err := repo.GetActive(ctx, "u1", order.ID)
		require.NoError(t, err)
		assert.Nil(t, active)

		archived, err := repo.GetHistory(ctx, "u1", order.ID)
		require.NoError(t, err)
		require.NotNil(t, archived)
		assert.Equal(t, order.ID, archived.ID)
		assert.Equal(t, 50.00, archived.Subtotal)
		assert.Equal(t, 1.00, archived.Tax)
		require.Len(t, archived.Lines, 1)
		assert.Equal(t, "Pizza", archived.Lines[0].Title)
	})

	t.Run("CopyToHistory is idempotent", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(model.StatusReceived)
		createOrder(t, order)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CopyToHistory(ctx, tx, order))
		require.NoError(t, repo.CopyToHistory(ctx, tx, order))
		require.NoError(t, tx.Commit(ctx))

		archived, err := repo.GetHistory(ctx, "u1", order.ID)
		require.NoError(t, err)
		require.NotNil(t, archived)
		assert.Len(t, archived.Lines, 1)
	})

	t.Run("ListActive filters by status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		createOrder(t, newOrder(model.StatusWaitConfirmed))
		createOrder(t, newOrder(model.StatusShipping))

		shipping, err := repo.ListActive(ctx, model.StatusShipping)
		require.NoError(t, err)
		assert.Len(t, shipping, 1)

		all, err := repo.ListActive(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(testDB.Pool, zerolog.Nop())

	t.Run("DebitBalance refuses to go negative", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := &model.User{
			ID:           "u1",
			Email:        "jane@example.com",
			PasswordHash: "hash",
			FullName:     "Jane",
			Balance:      50.00,
			Role:         model.RoleUser,
			CreatedAt:    time.Now(),
		}
		require.NoError(t, repo.Create(ctx, user))

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.DebitBalance(ctx, tx, "u1", 30.00))
		require.NoError(t, tx.Commit(ctx))

		tx, err = testDB.Pool.Begin(ctx)
		require.NoError(t, err)
		err = repo.DebitBalance(ctx, tx, "u1", 30.00)
		assert.Equal(t, model.ErrInsufficientFunds, err)
		require.NoError(t, tx.Rollback(ctx))

		got, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 20.00, got.Balance)
	})

	t.Run("Debit rolls back with its transaction", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := &model.User{
			ID:           "u2",
			Email:        "joe@example.com",
			PasswordHash: "hash",
			FullName:     "Joe",
			Balance:      50.00,
			Role:         model.RoleUser,
			CreatedAt:    time.Now(),
		}
		require.NoError(t, repo.Create(ctx, user))

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.DebitBalance(ctx, tx, "u2", 30.00))
		require.NoError(t, tx.Rollback(ctx))

		got, err := repo.GetByID(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, 50.00, got.Balance)
	})
}
