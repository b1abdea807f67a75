package dto

import (
	"time"

	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserSummary is the public shape of a user reference.
type UserSummary struct {
	ID    string      `json:"id"`
	Name  string      `json:"name,omitempty"`
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
}
