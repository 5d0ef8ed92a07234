package domain

import (
	"context"
	"strings"
	"time"
)

// Role is the account role fixed at signup.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleTeacher || r == RoleStudent
}

func (r Role) String() string {
	return string(r)
}

// NormalizeEmail lower-cases and trims an email address. All storage and
// comparison of emails goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User represents a domain user object. Records are append-only: once
// created, ID, Email, Role and CreatedAt never change.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NewUser creates a new User instance with a normalized email.
func NewUser(id, name, email, passwordHash string, role Role) *User {
	return &User{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.ID == "" {
		return ValidationErrors{NewMissingFieldError("id")}
	}
	if u.Email == "" {
		return ValidationErrors{NewMissingFieldError("email")}
	}
	if u.PasswordHash == "" {
		return ValidationErrors{NewMissingFieldError("password_hash")}
	}
	if !u.Role.IsValid() {
		return ValidationErrors{NewFieldError("role", CodeRoleRequired, "role must be teacher or student")}
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	// CreateUser inserts a new user. It fails with a DUPLICATE_EMAIL
	// domain error when the normalized email is already registered.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByEmail looks up a user by normalized email. It returns
	// (nil, nil) when no record exists.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID looks up a user by ID. It returns (nil, nil) when no
	// record exists.
	GetUserByID(ctx context.Context, userID string) (*User, error)

	// ListUsers returns a read-only snapshot of all users.
	ListUsers(ctx context.Context) ([]*User, error)
}
