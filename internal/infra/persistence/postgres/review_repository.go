package postgres

import (
	"context"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

//nolint:gochecknoglobals
var reviewOrderColumns = map[string]string{
	repository.ReviewOrderUpdatedAt: "updated_at",
	repository.ReviewOrderRating:    "rating",
}

// reviewRepository implements the domain.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a review. The unique pair index turns a racing duplicate into ErrReviewExists.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == uuid.Nil {
		review.ID = newID()
	}
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrReviewExists
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.NewValidationError("rating", "Ensure this value is between 1 and 5.")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// FindByID retrieves a review by id.
func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return toReviewDomain(&reviewM), nil
}

// List returns one page of reviews matching filter.
func (repo *reviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]*entity.Review, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ReviewModel{})
	if filter.BusinessUserID != nil {
		query = query.Where("business_user_id = ?", *filter.BusinessUserID)
	}
	if filter.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filter.ReviewerID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count reviews")
	}

	var reviews []*model.ReviewModel
	err := paginate(query, filter.Page).
		Order(orderClause(filter.Ordering, reviewOrderColumns, "updated_at DESC")).
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list reviews")
	}

	result := make([]*entity.Review, 0, len(reviews))
	for _, reviewM := range reviews {
		result = append(result, toReviewDomain(reviewM))
	}

	return result, total, nil
}

// Update writes rating and description.
func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{ID: review.ID}).
		Updates(map[string]any{
			"rating":      review.Rating,
			"description": review.Description,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.NewValidationError("rating", "Ensure this value is between 1 and 5.")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).Select("updated_at").Where("id = ?", review.ID).First(&reviewM).Error; err != nil {
		return errors.Wrap(err, "failed to reload review")
	}
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// Delete removes a review.
func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReviewModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// ExistsByPair reports whether reviewerID already reviewed businessUserID.
func (repo *reviewRepository) ExistsByPair(ctx context.Context, businessUserID, reviewerID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessUserID, reviewerID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check review pair")
	}

	return count > 0, nil
}

// Stats returns the review count and the average rating, 0 when there are no reviews.
func (repo *reviewRepository) Stats(ctx context.Context) (*repository.ReviewStats, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate reviews")
	}

	stats := &repository.ReviewStats{Count: row.Count}
	if row.Average != nil {
		stats.Average = *row.Average
	}

	return stats, nil
}

// --- Mapper Functions ---

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:             data.ID,
		BusinessUserID: data.BusinessUserID,
		ReviewerID:     data.ReviewerID,
		Rating:         data.Rating,
		Description:    data.Description,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:             data.ID,
		BusinessUserID: data.BusinessUserID,
		ReviewerID:     data.ReviewerID,
		Rating:         data.Rating,
		Description:    data.Description,
	}
}
