package dto

import (
	"time"

	"github.com/spec-kit/agent-onboarding/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse response.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse describes the operator account.
type UserResponse struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
}
