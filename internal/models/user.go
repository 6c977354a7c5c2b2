// Package models holds the wire types shared by the CreatorHub client and
// server: the public user record, auth payloads, ledger and feed items.
package models

import "time"

// User is the public identity record returned by the credential service
// and stored in the client's auth snapshot.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Credits          int64     `json:"credits"`
	ProfileCompleted bool      `json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
	LastLoginAt      time.Time `json:"lastLoginAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body of a successful register or login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse is the body of every non-2xx credential service reply.
type ErrorResponse struct {
	Message string `json:"message"`
}
