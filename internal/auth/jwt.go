// Package auth issues and verifies the bearer tokens the API authenticates
// with, and hashes account passwords. The secret is injected through
// configuration rather than read from process globals so the package stays
// independently testable.
package auth

import (
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified identity extracted from a token.
type Claims struct {
	UserID string
	Email  string
	Role   model.Role
}

// Manager signs and verifies HS256 JWTs.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager with the given signing secret and
// token lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for the user.
func (m *Manager) Generate(userID, email string, role model.Role) (string, error) {
	if userID == "" {
		return "", errors.New("empty user ID")
	}

	claims := jwt.MapClaims{
		"userID": userID,
		"email":  email,
		"role":   string(role),
		"exp":    time.Now().Add(m.ttl).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, _ := mapClaims["userID"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if userID == "" {
		return nil, errors.New("token missing user ID")
	}

	return &Claims{
		UserID: userID,
		Email:  email,
		Role:   model.Role(role),
	}, nil
}
