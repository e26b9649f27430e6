// Package pricing holds the pure cart arithmetic used by checkout: the
// selected-lines subtotal, the tax figure derived from it, and the quantity
// rules the cart endpoints enforce. Everything here is deterministic and
// side-effect free.
package pricing

import (
	"math"

	"foodcourt/internal/model"
)

// TaxRate is the flat tax applied to the selected subtotal.
const TaxRate = 0.02

// DeliveryFee is the fixed per-order delivery charge. It is added by the
// checkout flow, not by SelectedTotal or Tax.
const DeliveryFee = 10.0

// SelectedTotal sums unitPrice × quantity over the lines whose food ID maps
// to true in selection. Lines absent from the selection are excluded. Empty
// lines or an empty selection yield exactly 0. No rounding is applied
// beyond the natural precision of the inputs.
func SelectedTotal(lines []model.CartLine, selection model.Selection) float64 {
	var total float64
	for _, line := range lines {
		if selection[line.FoodID] {
			total += line.UnitPrice * float64(line.Quantity)
		}
	}
	return total
}

// Tax returns the flat-rate tax on selectedTotal, rounded half-up to cents.
func Tax(selectedTotal float64) float64 {
	return math.Round(selectedTotal*TaxRate*100) / 100
}

// Increase bumps a quantity by one.
func Increase(quantity int) int {
	return quantity + 1
}

// Decrease lowers a quantity by one but never below 1. Taking a line to
// zero is only possible through the explicit remove operation, which
// deletes the row entirely rather than leaving a zero-quantity line.
func Decrease(quantity int) int {
	if quantity <= 1 {
		return 1
	}
	return quantity - 1
}
