package model

import "time"

// Food represents a dish in the menu catalogue.
type Food struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	ImagePath   string    `json:"imagePath" db:"image_path"`
	CategoryID  string    `json:"categoryId" db:"category_id"`
	BestFood    bool      `json:"bestFood" db:"best_food"`
	Calorie     int       `json:"calorie" db:"calorie"`
	Star        float64   `json:"star" db:"star"`
	TimeValue   int       `json:"timeValue" db:"time_value"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Category groups foods on the dashboard.
type Category struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	ImagePath string `json:"imagePath" db:"image_path"`
}
