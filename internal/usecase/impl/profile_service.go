package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/constants"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	store     service.ContentStore
	logger    *slog.Logger
	now       func() time.Time
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Store     service.ContentStore
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		store:     params.Store,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile retrieves a user together with its profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.log(ctx).Debug("Getting user profile", slog.Any("userID", userID))

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		foundUser, err := findProfileUser(ctx, repoFactory.NewUserRepository(), userID)
		if err != nil {
			return err
		}
		user = foundUser

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user profile")
	}

	return user, nil
}

// UpdateProfile applies a partial update by the profile owner, replacing the avatar when a file is supplied.
func (srv *profileService) UpdateProfile(
	ctx context.Context,
	caller policy.Caller,
	userID uuid.UUID,
	input *usecase.UpdateProfileInput,
) (*entity.User, error) {
	srv.log(ctx).Info("Updating user profile", slog.Any("userID", userID))

	var (
		updated     *entity.User
		replacement *fileReplacement
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// 1. Find the user and check ownership
		user, err := findProfileUser(ctx, userRepo, userID)
		if err != nil {
			return err
		}
		if err := policy.Check(caller, policy.ProfileUpdate, user.ID); err != nil {
			return err
		}

		// 2. Validate the new email
		if input.Email != nil {
			email := strings.TrimSpace(*input.Email)
			taken, err := userRepo.ExistsByEmail(ctx, email, user.ID)
			if err != nil {
				return errors.Wrap(err, "failed to check email")
			}
			if taken {
				return domainerrors.NewValidationError("email", "Email is already in use.")
			}
			user.Email = email
		}

		// 3. Apply the remaining fields
		applyProfileInput(user, input)

		// 4. Store the new avatar
		replacement, err = storeUpload(ctx, srv.store, srv.log(ctx), constants.StoragePrefixProfiles, input.File, user.Profile.File)
		if err != nil {
			return err
		}
		if replacement.Replaced() {
			uploadedAt := srv.now().UTC()
			user.Profile.File = replacement.newKey
			user.Profile.UploadedAt = &uploadedAt
		}

		// 5. Save the updated user
		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUserConflict) {
				return domainerrors.NewValidationError("email", "Email is already in use.")
			}

			return errors.Wrap(err, "failed to update user profile")
		}
		updated = user

		return nil
	})
	if err != nil {
		replacement.Rollback(ctx)

		return nil, errors.Wrap(err, "failed to update user profile")
	}
	replacement.Commit(ctx)

	return updated, nil
}

// ListProfiles returns one page of users with the given profile type.
func (srv *profileService) ListProfiles(
	ctx context.Context,
	profileType entity.ProfileType,
	page repository.Page,
) ([]*entity.User, int64, error) {
	var (
		users []*entity.User
		total int64
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		users, total, err = repoFactory.NewUserRepository().ListByProfileType(ctx, profileType, page)

		return err
	})
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to list %s profiles", profileType)
	}

	return users, total, nil
}

func findProfileUser(ctx context.Context, userRepo repository.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}
	if user.Profile == nil {
		return nil, domainerrors.ErrProfileNotFound
	}

	return user, nil
}

func applyProfileInput(user *entity.User, input *usecase.UpdateProfileInput) {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Location != nil {
		user.Profile.Location = *input.Location
	}
	if input.Tel != nil {
		user.Profile.Tel = *input.Tel
	}
	if input.Description != nil {
		user.Profile.Description = *input.Description
	}
	if input.WorkingHours != nil {
		user.Profile.WorkingHours = *input.WorkingHours
	}
}
