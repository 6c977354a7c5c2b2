// Package cryptox wraps password hashing for the credential service.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for new hashes.
const PasswordCost = 10

// ErrMismatch is returned by CheckPassword when the password is wrong.
var ErrMismatch = errors.New("password mismatch")

// generateFromPassword is a test seam for bcrypt.GenerateFromPassword.
var generateFromPassword = bcrypt.GenerateFromPassword

// HashPassword returns the bcrypt hash of password.
func HashPassword(password []byte) (string, error) {
	h, err := generateFromPassword(password, PasswordCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword compares password with a hash produced by HashPassword.
// A wrong password yields ErrMismatch; a corrupt hash yields the bcrypt error.
func CheckPassword(hash string, password []byte) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
