package model

import "time"

// Review is a customer review of a food. Rating is clamped to 0..5 at
// validation time, never silently.
type Review struct {
	ID        string    `json:"reviewId" db:"id"`
	FoodID    int64     `json:"foodId" db:"food_id"`
	UserID    string    `json:"uid" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	Rating    float64   `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	ImageURL  string    `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
}

// FavouriteFood is a food snapshot a user has marked as favourite, keyed by
// the food's ID.
type FavouriteFood struct {
	UserID    string    `json:"-" db:"user_id"`
	FoodID    int64     `json:"foodId" db:"food_id"`
	Title     string    `json:"title" db:"title"`
	UnitPrice float64   `json:"unitPrice" db:"unit_price"`
	ImagePath string    `json:"imagePath" db:"image_path"`
	Star      float64   `json:"star" db:"star"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
