package pricing

import (
	"testing"

	"foodcourt/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSelectedTotal_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, SelectedTotal(nil, nil))
	assert.Equal(t, 0.0, SelectedTotal([]model.CartLine{}, model.Selection{}))
	assert.Equal(t, 0.0, SelectedTotal(
		[]model.CartLine{{FoodID: 1, UnitPrice: 5, Quantity: 2}},
		model.Selection{},
	))
}

func TestSelectedTotal_OnlySelectedLinesCount(t *testing.T) {
	lines := []model.CartLine{
		{FoodID: 1, Title: "Pizza", UnitPrice: 10, Quantity: 2},
		{FoodID: 2, Title: "Soda", UnitPrice: 3, Quantity: 1},
	}
	selection := model.Selection{1: true, 2: false}

	assert.Equal(t, 20.0, SelectedTotal(lines, selection))
}

func TestSelectedTotal_AbsentKeyIsExcluded(t *testing.T) {
	lines := []model.CartLine{
		{FoodID: 1, UnitPrice: 10, Quantity: 2},
		{FoodID: 2, UnitPrice: 3, Quantity: 1},
	}
	// Food 2 has no entry in the selection at all.
	selection := model.Selection{1: true}

	assert.Equal(t, 20.0, SelectedTotal(lines, selection))
}

func TestSelectedTotal_MonotonicInSelection(t *testing.T) {
	lines := []model.CartLine{
		{FoodID: 1, UnitPrice: 4.5, Quantity: 3},
		{FoodID: 2, UnitPrice: 7, Quantity: 1},
		{FoodID: 3, UnitPrice: 2.25, Quantity: 4},
	}

	// Selecting one more line must never decrease the total.
	selection := model.Selection{}
	prev := SelectedTotal(lines, selection)
	for _, line := range lines {
		selection[line.FoodID] = true
		cur := SelectedTotal(lines, selection)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, 4.5*3+7+2.25*4, prev)
}

func TestTax(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		expected float64
	}{
		{name: "zero total", total: 0, expected: 0},
		{name: "two percent of 100", total: 100, expected: 2.00},
		{name: "rounds half-up to cents", total: 12.25, expected: 0.25},
		{name: "small total", total: 20, expected: 0.40},
		{name: "fractional total", total: 33.33, expected: 0.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tax(tt.total))
		})
	}
}

func TestTax_Pure(t *testing.T) {
	first := Tax(59.99)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Tax(59.99))
	}
}

func TestDecrease_FloorsAtOne(t *testing.T) {
	q := 5
	for i := 0; i < 10; i++ {
		q = Decrease(q)
		assert.GreaterOrEqual(t, q, 1)
	}
	assert.Equal(t, 1, q)

	// Already at the floor.
	assert.Equal(t, 1, Decrease(1))
	assert.Equal(t, 1, Decrease(0))
}

func TestIncrease(t *testing.T) {
	assert.Equal(t, 2, Increase(1))
	assert.Equal(t, 8, Increase(7))
}

func TestEndToEnd_PizzaSodaScenario(t *testing.T) {
	lines := []model.CartLine{
		{FoodID: 1, Title: "Pizza", UnitPrice: 10, Quantity: 2},
		{FoodID: 2, Title: "Soda", UnitPrice: 3, Quantity: 1},
	}
	selection := model.Selection{1: true}

	subtotal := SelectedTotal(lines, selection)
	tax := Tax(subtotal)

	assert.Equal(t, 20.0, subtotal)
	assert.Equal(t, 0.40, tax)
	assert.Equal(t, 30.40, subtotal+tax+DeliveryFee)
}
