package model

import "time"

// CartLine is one food entry in a user's cart. The food ID is the line's
// identity; the title is carried for display only. A line is never persisted
// with quantity zero: removing the last unit deletes the row.
type CartLine struct {
	UserID    string    `json:"-" db:"user_id"`
	FoodID    int64     `json:"foodId" db:"food_id"`
	Title     string    `json:"title" db:"title"`
	UnitPrice float64   `json:"unitPrice" db:"unit_price"`
	ImagePath string    `json:"imagePath" db:"image_path"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Selection marks which cart lines are included in the current checkout
// computation, keyed by food ID. It is session state, never persisted;
// a food ID absent from the map is excluded.
type Selection map[int64]bool
