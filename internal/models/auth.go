package models

import "github.com/golang-jwt/jwt/v4"

// JwtCustomClaims are the claims the external identity provider mints for a
// caller. UserID is the opaque identity every resource references.
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
