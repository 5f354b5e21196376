package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/lumehq/lume-api/internal/models"
	"github.com/lumehq/lume-api/internal/services"
)

// ProfileServiceInterface defines the methods used by handlers from ProfileService
type ProfileServiceInterface interface {
	All(ctx context.Context) ([]models.User, error)
	Find(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Search(ctx context.Context, query string, pageSize int) ([]models.User, error)
	Update(ctx context.Context, userID uuid.UUID, inputs services.ProfileUpdate) (bool, error)
	Invite(ctx context.Context, info services.InviteInput) (*models.User, error)
	Destroy(ctx context.Context, id uuid.UUID) (bool, error)
}
