package usecase

import (
	"context"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, caller policy.Caller, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	ListProfiles(ctx context.Context, profileType entity.ProfileType, page repository.Page) ([]*entity.User, int64, error)
}

// --- Input DTOs ---

// UpdateProfileInput defines a partial profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Location     *string
	Tel          *string
	Description  *string
	WorkingHours *string
	File         *FileUpload // Replaces the avatar when set.
}
