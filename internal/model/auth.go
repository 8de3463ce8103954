package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are JWT claims for an authenticated session
type SessionClaims struct {
	UserID   string   `json:"userId"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for user registration
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
	Token    string   `json:"token"`
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}
