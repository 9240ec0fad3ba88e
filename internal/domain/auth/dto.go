package auth

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest for POST /auth/register
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents user in API responses
type UserResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt string    `json:"createdAt"`
}

// AuthResponse for register/login
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

// NewUserResponse builds a UserResponse
func NewUserResponse(id uuid.UUID, username string, createdAt time.Time) UserResponse {
	return UserResponse{
		UserID:    id,
		Username:  username,
		CreatedAt: createdAt.Format(time.RFC3339),
	}
}
