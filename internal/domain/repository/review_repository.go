package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for review persistence.
var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewExists is returned when the reviewer already reviewed the business user.
	ErrReviewExists = errors.New("review already exists")
)

// Sortable review fields.
const (
	ReviewOrderUpdatedAt = "updated_at"
	ReviewOrderRating    = "rating"
)

// ReviewFilter narrows a review list. Nil fields do not filter.
type ReviewFilter struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       *Ordering
	Page           Page
}

// ReviewStats summarizes all reviews.
type ReviewStats struct {
	Count   int64
	Average float64
}

// ReviewRepository defines the persistence operations for reviews.
type ReviewRepository interface {
	// Create persists a new review. Returns ErrReviewExists when the pair is already reviewed.
	Create(ctx context.Context, review *entity.Review) error

	// FindByID retrieves a review by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// List returns one page of reviews matching filter and the total count.
	List(ctx context.Context, filter ReviewFilter) ([]*entity.Review, int64, error)

	// Update writes rating and description.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByPair reports whether reviewerID already reviewed businessUserID.
	ExistsByPair(ctx context.Context, businessUserID, reviewerID uuid.UUID) (bool, error)

	// Stats returns the review count and average rating over all reviews.
	Stats(ctx context.Context) (*ReviewStats, error)
}
