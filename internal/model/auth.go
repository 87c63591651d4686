package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims attached to every authenticated request
type UserClaims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Identity is the verified caller identity derived from a valid token
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// RegisterRequest is the request body for account registration
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
