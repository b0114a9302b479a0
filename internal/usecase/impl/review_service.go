package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	businessUserField = "business_user"
	maxReviewLength   = 200
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview stores the calling customer's review of a business user.
func (srv *reviewService) CreateReview(ctx context.Context, caller policy.Caller, input *usecase.CreateReviewInput) (*entity.Review, error) {
	srv.log(ctx).Info("Creating review", slog.Any("reviewerID", caller.UserID), slog.Any("businessUserID", input.BusinessUserID))

	if err := policy.Check(caller, policy.ReviewCreate, uuid.Nil); err != nil {
		return nil, err
	}
	if err := validateReviewFields(&input.Rating, &input.Description); err != nil {
		return nil, err
	}

	review := &entity.Review{
		BusinessUserID: input.BusinessUserID,
		ReviewerID:     caller.UserID,
		Rating:         input.Rating,
		Description:    input.Description,
	}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		business, err := repoFactory.NewUserRepository().FindByID(ctx, input.BusinessUserID)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find business user")
		}
		if business == nil || business.ProfileType() != entity.ProfileTypeBusiness {
			return domainerrors.NewValidationError(businessUserField, "Found no business user with this ID.")
		}

		exists, err := reviewRepo.ExistsByPair(ctx, input.BusinessUserID, caller.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to check existing review")
		}
		if exists {
			return alreadyReviewedError()
		}

		if err := reviewRepo.Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrReviewExists) {
				return alreadyReviewedError()
			}

			return errors.Wrap(err, "failed to create review")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	return review, nil
}

// ListReviews returns one page of reviews matching filter.
func (srv *reviewService) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]*entity.Review, int64, error) {
	var (
		reviews []*entity.Review
		total   int64
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		reviews, total, err = repoFactory.NewReviewRepository().List(ctx, filter)

		return err
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, total, nil
}

// UpdateReview lets the reviewer change rating and description. The business user is fixed.
func (srv *reviewService) UpdateReview(
	ctx context.Context,
	caller policy.Caller,
	id uuid.UUID,
	input *usecase.UpdateReviewInput,
) (*entity.Review, error) {
	srv.log(ctx).Info("Updating review", slog.Any("reviewID", id))

	var review *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		found, err := findReview(ctx, reviewRepo, id)
		if err != nil {
			return err
		}
		if err := policy.Check(caller, policy.ReviewUpdate, found.ReviewerID); err != nil {
			return err
		}

		if input.BusinessUserID != nil && *input.BusinessUserID != found.BusinessUserID {
			return domainerrors.NewValidationError(businessUserField, "The business user of a review cannot be changed.")
		}
		if err := validateReviewFields(input.Rating, input.Description); err != nil {
			return err
		}

		if input.Rating != nil {
			found.Rating = *input.Rating
		}
		if input.Description != nil {
			found.Description = *input.Description
		}
		if err := reviewRepo.Update(ctx, found); err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to update review")
		}
		review = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update review")
	}

	return review, nil
}

// DeleteReview removes a review of the caller.
func (srv *reviewService) DeleteReview(ctx context.Context, caller policy.Caller, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting review", slog.Any("reviewID", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		found, err := findReview(ctx, reviewRepo, id)
		if err != nil {
			return err
		}
		if err := policy.Check(caller, policy.ReviewDelete, found.ReviewerID); err != nil {
			return err
		}

		if err := reviewRepo.Delete(ctx, found.ID); err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to delete review")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}

func findReview(ctx context.Context, reviewRepo repository.ReviewRepository, id uuid.UUID) (*entity.Review, error) {
	review, err := reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return review, nil
}

// validateReviewFields checks the supplied rating and description. Nil values are skipped.
func validateReviewFields(rating *int, description *string) error {
	validationErr := domainerrors.NewValidationErrors(nil)

	if rating != nil && (*rating < entity.MinRating || *rating > entity.MaxRating) {
		validationErr.Add("rating", fmt.Sprintf("Ensure this value is between %d and %d.", entity.MinRating, entity.MaxRating))
	}
	if description != nil && len([]rune(*description)) > maxReviewLength {
		validationErr.Add("description", fmt.Sprintf("Ensure this field has no more than %d characters.", maxReviewLength))
	}

	if len(validationErr.FieldErrors()) > 0 {
		return validationErr
	}

	return nil
}

func alreadyReviewedError() error {
	return domainerrors.NewValidationError(businessUserField, "You have already reviewed this business user.")
}
