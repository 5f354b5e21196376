package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumehq/lume-api/internal/models"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(user *models.User) UserResponse {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}

type UpdateUserRequest struct {
	Email *string        `json:"email,omitempty"`
	Name  *string        `json:"name,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Roles []string       `json:"roles,omitempty"`
}

type UpdateUserResponse struct {
	Updated bool `json:"updated"`
}

type InviteUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}
