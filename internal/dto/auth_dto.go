package dto

import (
	"time"

	"github.com/noah-isme/sirius-edu-api/internal/models"
)

// LoginRequest identifies the user by free-text name and role.
type LoginRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Role string `json:"role" validate:"required,oneof=TEACHER COORDINATOR"`
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
	ReadOnly  bool        `json:"read_only"`
}
