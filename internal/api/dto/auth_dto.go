package dto

import (
	"time"

	"github.com/spec-kit/repair-service/internal/domain"
)

// LoginRequest authenticates by email or telephone number.
type LoginRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// BootstrapRequest creates the first superadmin.
type BootstrapRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	TelephoneNumber *string `json:"telephone_number"`
}

// UserResponse is the public identity shape.
type UserResponse struct {
	ID              string            `json:"id"`
	Role            domain.GlobalRole `json:"role"`
	Email           string            `json:"email"`
	TelephoneNumber *string           `json:"telephone_number"`
	FirstName       *string           `json:"first_name"`
	LastName        *string           `json:"last_name"`
}

// LoginResponse carries the issued credential and profile.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Role:            user.Role,
		Email:           user.Email,
		TelephoneNumber: user.TelephoneNumber,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
	}
}
