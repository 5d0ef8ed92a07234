package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SessionResponse is the ephemeral view of a logged-in account. It
// deliberately carries no secret material.
type SessionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned on successful signup or login.
type AuthResponse struct {
	Session     SessionResponse `json:"session"`
	AccessToken string          `json:"access_token"`
}

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// PasswordStrengthRequest asks for UI-facing strength guidance.
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

// PasswordStrengthResponse reports which checks a candidate password
// satisfies and the mapped strength label.
type PasswordStrengthResponse struct {
	Strength        string `json:"strength"` // "Weak", "Medium" or "Strong"
	SatisfiedChecks int    `json:"satisfied_checks"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}
