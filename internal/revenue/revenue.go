// Package revenue buckets archived orders into time windows for the admin
// report. Only orders that made it into history count; active orders are
// excluded regardless of status. Buckets are recomputed from the full
// history snapshot on every request rather than maintained incrementally,
// so the report can never drift from the stored orders.
package revenue

import (
	"time"

	"foodcourt/internal/model"
)

// DailyWindow and MonthlyWindow are the fixed report sizes: the trailing 7
// calendar days and 12 calendar months, both inclusive of the current one.
const (
	DailyWindow   = 7
	MonthlyWindow = 12
)

// Bucket is one aggregation unit of the report. Key is the stable machine
// identity ("2006-01-02" for days, "2006-01" for months); Label is the
// human-readable rendering and carries no aggregation meaning.
type Bucket struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// Countable reports whether an archived order contributes to revenue:
// its recorded total must be strictly positive. Malformed records with
// missing or non-positive totals are filtered out.
func Countable(o model.Order) bool {
	return o.Total() > 0
}

// Daily buckets history orders by calendar date over the trailing
// DailyWindow days ending at now. The result always holds exactly
// DailyWindow buckets in chronological order, oldest first; days without
// orders appear as zero-valued buckets.
func Daily(history []model.Order, now time.Time) []Bucket {
	buckets := make([]Bucket, DailyWindow)
	index := make(map[string]int, DailyWindow)

	start := now.AddDate(0, 0, -(DailyWindow - 1))
	for i := 0; i < DailyWindow; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		buckets[i] = Bucket{Key: key, Label: day.Format("Mon Jan 2")}
		index[key] = i
	}

	for _, o := range history {
		if !Countable(o) {
			continue
		}
		key := o.CreatedAt.In(now.Location()).Format("2006-01-02")
		if i, ok := index[key]; ok {
			buckets[i].Total += o.Total()
		}
	}

	return buckets
}

// Monthly buckets history orders by calendar year-month over the trailing
// MonthlyWindow months ending at now, with the same zero-fill and
// oldest-first contract as Daily.
func Monthly(history []model.Order, now time.Time) []Bucket {
	buckets := make([]Bucket, MonthlyWindow)
	index := make(map[string]int, MonthlyWindow)

	// Normalise to the first of the month so AddDate cannot skip short
	// months (e.g. Jan 31 minus one month).
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start := current.AddDate(0, -(MonthlyWindow - 1), 0)
	for i := 0; i < MonthlyWindow; i++ {
		month := start.AddDate(0, i, 0)
		key := month.Format("2006-01")
		buckets[i] = Bucket{Key: key, Label: month.Format("Jan 2006")}
		index[key] = i
	}

	for _, o := range history {
		if !Countable(o) {
			continue
		}
		key := o.CreatedAt.In(now.Location()).Format("2006-01")
		if i, ok := index[key]; ok {
			buckets[i].Total += o.Total()
		}
	}

	return buckets
}

// WindowTotal sums all bucket totals. It must always equal the sum obtained
// by filtering history directly over the same window.
func WindowTotal(buckets []Bucket) float64 {
	var total float64
	for _, b := range buckets {
		total += b.Total
	}
	return total
}
