package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role represents the role of a registered user
type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// User represents a registered account
type User struct {
	ID              uuid.UUID `json:"_id" db:"id"`
	Name            string    `json:"name" db:"name"`
	TelephoneNumber string    `json:"telephoneNumber" db:"telephone_number"`
	Email           string    `json:"email" db:"email"`
	Password        string    `json:"-" db:"password"`
	Role            Role      `json:"role" db:"role"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// Actor is the authenticated identity performing an operation
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// RegisterRequest represents the request to register a new account
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	TelephoneNumber string `json:"telephoneNumber" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	Role            Role   `json:"role"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Validate validates the register request
func (r *RegisterRequest) Validate() error {
	switch r.Role {
	case "", RoleUser, RoleProvider, RoleAdmin:
	default:
		return errors.New("role must be one of user, provider, admin")
	}
	return nil
}

// EffectiveRole returns the requested role, defaulting to regular user
func (r *RegisterRequest) EffectiveRole() Role {
	if r.Role == "" {
		return RoleUser
	}
	return r.Role
}
