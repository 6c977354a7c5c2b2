// Package common contains shared constants and sentinel errors used across
// CreatorHub components.
package common

// AuthorizationHeaderName is the gRPC metadata key (and HTTP header, case
// insensitive) that carries the bearer token on authenticated calls.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the JWT in AuthorizationHeaderName values.
const BearerPrefix = "Bearer "

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
