package usecase

import (
	"context"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
)

// ReviewUsecase defines the review operations.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, caller policy.Caller, input *CreateReviewInput) (*entity.Review, error)
	ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]*entity.Review, int64, error)
	UpdateReview(ctx context.Context, caller policy.Caller, id uuid.UUID, input *UpdateReviewInput) (*entity.Review, error)
	DeleteReview(ctx context.Context, caller policy.Caller, id uuid.UUID) error
}

// --- Input DTOs ---

// CreateReviewInput defines a new review. The reviewer is always the caller.
type CreateReviewInput struct {
	BusinessUserID uuid.UUID
	Rating         int
	Description    string
}

// UpdateReviewInput defines a partial review update. Nil fields are left unchanged.
type UpdateReviewInput struct {
	BusinessUserID *uuid.UUID // Must match the stored business user when set.
	Rating         *int
	Description    *string
}
