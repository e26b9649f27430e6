package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fixed one-directional order progression. An order
// advances one step at a time and never moves backwards. "Received" is the
// last status an active order can hold; leaving it is not a status update
// but a relocation of the whole record into the history collection.
type OrderStatus string

const (
	StatusWaitConfirmed OrderStatus = "Wait Confirmed"
	StatusShipping      OrderStatus = "Shipping"
	StatusReceived      OrderStatus = "Received"
)

// NextStatus returns the status one step ahead of current. ok is false when
// current has no plain forward transition: either it is not a known status,
// or it is "Received", where the only way forward is the archive operation.
func NextStatus(current OrderStatus) (next OrderStatus, ok bool) {
	switch current {
	case StatusWaitConfirmed:
		return StatusShipping, true
	case StatusShipping:
		return StatusReceived, true
	default:
		return "", false
	}
}

// Valid reports whether s is one of the active-order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusWaitConfirmed, StatusShipping, StatusReceived:
		return true
	}
	return false
}

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentBank           PaymentMethod = "Bank Payment"
)

// BankPaymentInfo records the transfer details when the customer pays by
// bank, kept for reconciliation against the debited balance.
type BankPaymentInfo struct {
	BankName          string  `json:"bankName"`
	AccountHolderName string  `json:"accountHolderName"`
	AccountNumber     string  `json:"accountNumber"`
	Amount            float64 `json:"amount"`
	TransactionTime   int64   `json:"transactionTime"`
	TransactionRef    string  `json:"transactionRef,omitempty"`
}

// OrderLine is a cart line snapshot frozen at order-creation time. Later
// cart edits never touch it.
type OrderLine struct {
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	FoodID    int64     `json:"foodId" db:"food_id"`
	Title     string    `json:"title" db:"title"`
	UnitPrice float64   `json:"unitPrice" db:"unit_price"`
	ImagePath string    `json:"imagePath" db:"image_path"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// Order is a placed order. Subtotal and Tax are computed once at creation
// from the selected cart lines and never recomputed afterwards.
type Order struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	UserID          string           `json:"userId" db:"user_id"`
	UserName        string           `json:"userName,omitempty" db:"user_name"`
	Lines           []OrderLine      `json:"lines"`
	Subtotal        float64          `json:"subtotal" db:"subtotal"`
	Tax             float64          `json:"tax" db:"tax"`
	DeliveryFee     float64          `json:"deliveryFee" db:"delivery_fee"`
	Status          OrderStatus      `json:"status" db:"status"`
	Address         string           `json:"address" db:"address"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod" db:"payment_method"`
	BankPaymentInfo *BankPaymentInfo `json:"bankPaymentInfo,omitempty"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
}

// Total is the amount the customer pays: subtotal + tax + delivery fee.
func (o *Order) Total() float64 {
	return o.Subtotal + o.Tax + o.DeliveryFee
}

// ShortRef is the short human-facing order reference used in receipts:
// the last 8 characters of the ID, uppercased.
func (o *Order) ShortRef() string {
	s := o.ID.String()
	if len(s) > 8 {
		s = s[len(s)-8:]
	}
	return strings.ToUpper(s)
}
