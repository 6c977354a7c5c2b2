// Package models contains server-side storage records.
package models

import (
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/models"
)

// Account is a stored user, including the bcrypt password hash that never
// leaves the server.
type Account struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	Role             string
	ProfileCompleted bool
	CreatedAt        time.Time
	LastLoginAt      time.Time
}

// Public converts the account to its wire form with the given ledger balance.
func (a *Account) Public(credits int64) *models.User {
	return &models.User{
		ID:               a.ID,
		Username:         a.Username,
		Email:            a.Email,
		Role:             a.Role,
		Credits:          credits,
		ProfileCompleted: a.ProfileCompleted,
		CreatedAt:        a.CreatedAt,
		LastLoginAt:      a.LastLoginAt,
	}
}
