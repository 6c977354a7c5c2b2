// Package auth issues and verifies the HS256 session tokens handed out by
// the credential service.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultValidity is how long a freshly issued token stays valid.
const DefaultValidity = 24 * time.Hour

// Claims carries the user id and email alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// now is a test seam.
var now = time.Now

// GenerateToken signs a token for the user that expires after validity.
func GenerateToken(userID, email string, secretKey []byte, validity time.Duration) (string, error) {
	issuedAt := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validity)),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and expiry of tokenString.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
