package model

import "time"

// Role controls access to the admin dashboard routes.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is an account holder. Balance is debited when paying by bank.
type User struct {
	ID           string    `json:"uid" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	BirthDate    string    `json:"birthDate" db:"birth_date"`
	Gender       string    `json:"gender" db:"gender"`
	Balance      float64   `json:"balance" db:"balance"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
