package revenue

import (
	"testing"
	"time"

	"foodcourt/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(createdAt time.Time, subtotal, tax, fee float64) model.Order {
	return model.Order{
		ID:          uuid.New(),
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Status:      model.StatusReceived,
		CreatedAt:   createdAt,
	}
}

func TestDaily_AlwaysSevenBucketsOldestFirst(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	buckets := Daily(nil, now)

	require.Len(t, buckets, 7)
	assert.Equal(t, "2026-08-25", buckets[0].Key)
	assert.Equal(t, "2026-08-31", buckets[6].Key)
	for _, b := range buckets {
		assert.Equal(t, 0.0, b.Total)
	}
}

func TestDaily_BucketsByCreationDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	history := []model.Order{
		orderAt(now, 50, 1, 10),                      // today: 61
		orderAt(now.AddDate(0, 0, -2), 20, 0.40, 10), // two days ago: 30.40
		orderAt(now.AddDate(0, 0, -2), 9.60, 0, 0),   // same day: 9.60
		orderAt(now.AddDate(0, 0, -10), 100, 2, 10),  // outside the window
	}

	buckets := Daily(history, now)

	require.Len(t, buckets, 7)
	assert.Equal(t, 61.0, buckets[6].Total)
	assert.Equal(t, 40.0, buckets[4].Total)
	assert.Equal(t, 0.0, buckets[5].Total)
}

func TestDaily_ExcludesNonPositiveTotals(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	history := []model.Order{
		orderAt(now, 0, 0, 0),   // malformed, total 0
		orderAt(now, -5, 0, 0),  // malformed, negative
		orderAt(now, 15, 0.30, 10),
	}

	buckets := Daily(history, now)

	assert.Equal(t, 25.30, WindowTotal(buckets))
}

func TestMonthly_AlwaysTwelveBucketsOldestFirst(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	buckets := Monthly(nil, now)

	require.Len(t, buckets, 12)
	assert.Equal(t, "2025-09", buckets[0].Key)
	assert.Equal(t, "2026-08", buckets[11].Key)
}

func TestMonthly_EndOfMonthDoesNotSkip(t *testing.T) {
	// Jan 31 minus naive month steps would land on "Dec 1" twice; the
	// first-of-month normalisation must keep all 12 keys distinct.
	now := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

	buckets := Monthly(nil, now)

	require.Len(t, buckets, 12)
	seen := map[string]bool{}
	for _, b := range buckets {
		assert.False(t, seen[b.Key], "duplicate key %s", b.Key)
		seen[b.Key] = true
	}
	assert.Equal(t, "2025-02", buckets[0].Key)
	assert.Equal(t, "2026-01", buckets[11].Key)
}

func TestMonthly_BucketsByMonth(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	history := []model.Order{
		orderAt(now, 50, 1, 10),
		orderAt(now.AddDate(0, -1, 0), 20, 0.40, 10),
		orderAt(now.AddDate(0, -13, 0), 999, 0, 0), // outside the window
	}

	buckets := Monthly(history, now)

	assert.Equal(t, 61.0, buckets[11].Total)
	assert.Equal(t, 30.40, buckets[10].Total)
	assert.Equal(t, 91.40, WindowTotal(buckets))
}

// Bucket sums must equal a direct filter over the same window.
func TestConsistency_BucketSumEqualsDirectFilter(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)

	var history []model.Order
	for day := 0; day < 20; day++ {
		history = append(history, orderAt(now.AddDate(0, 0, -day), float64(10+day), 0.50, 10))
	}

	daily := Daily(history, now)
	windowStart := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	var direct float64
	for _, o := range history {
		if Countable(o) && !o.CreatedAt.Before(windowStart) && !o.CreatedAt.After(now) {
			direct += o.Total()
		}
	}

	assert.InDelta(t, direct, WindowTotal(daily), 1e-9)
}

func TestBucketLabelIsNotTheKey(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	daily := Daily(nil, now)
	monthly := Monthly(nil, now)

	assert.Equal(t, "Mon Aug 31", daily[6].Label)
	assert.Equal(t, "Aug 2026", monthly[11].Label)
}
