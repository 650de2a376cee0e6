package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents the claims Supabase puts in its access tokens; the user id travels in sub
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// authenticated caller identity extracted from a verified token
type Identity struct {
	UserID string
	Email  string
}
