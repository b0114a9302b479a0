package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"coderr/internal/domain/constants"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileServiceFixture struct {
	*serviceMocks
	service *profileService
	now     time.Time
}

func createTestProfileService(t *testing.T) *profileServiceFixture {
	mocks := newServiceMocks(t)
	srv := NewProfileService(ProfileServiceParams{
		TxManager: mocks.txManager,
		Store:     mocks.store,
		Logger:    newDiscardLogger(),
	}).(*profileService)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return now }

	return &profileServiceFixture{serviceMocks: mocks, service: srv, now: now}
}

func newProfileUser(profileType entity.ProfileType) *entity.User {
	id := uuid.New()

	return &entity.User{
		ID:       id,
		Username: "anna",
		Email:    "anna@example.com",
		Profile:  &entity.Profile{UserID: id, Type: profileType},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestProfileService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := createTestProfileService(t)
		user := newProfileUser(entity.ProfileTypeCustomer)

		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

		got, err := f.service.GetProfile(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("missing user", func(t *testing.T) {
		f := createTestProfileService(t)
		id := uuid.New()

		f.userRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrUserNotFound)

		_, err := f.service.GetProfile(ctx, id)

		assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the supplied fields only", func(t *testing.T) {
		f := createTestProfileService(t)
		user := newProfileUser(entity.ProfileTypeBusiness)
		user.FirstName = "Anna"
		user.Profile.Location = "Berlin"
		caller := policy.NewCaller(user)

		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		f.userRepo.EXPECT().Update(ctx, user).Return(nil)

		got, err := f.service.UpdateProfile(ctx, caller, user.ID, &usecase.UpdateProfileInput{
			LastName:     ptr("Schmidt"),
			WorkingHours: ptr("9-17"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Anna", got.FirstName)
		assert.Equal(t, "Schmidt", got.LastName)
		assert.Equal(t, "Berlin", got.Profile.Location)
		assert.Equal(t, "9-17", got.Profile.WorkingHours)
	})

	t.Run("missing profile comes before the permission check", func(t *testing.T) {
		f := createTestProfileService(t)
		id := uuid.New()

		f.userRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrUserNotFound)

		_, err := f.service.UpdateProfile(ctx, customerCaller(), id, &usecase.UpdateProfileInput{})

		assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		f := createTestProfileService(t)
		user := newProfileUser(entity.ProfileTypeCustomer)

		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

		_, err := f.service.UpdateProfile(ctx, customerCaller(), user.ID, &usecase.UpdateProfileInput{
			FirstName: ptr("Mallory"),
		})

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		f := createTestProfileService(t)
		user := newProfileUser(entity.ProfileTypeCustomer)

		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		f.userRepo.EXPECT().ExistsByEmail(ctx, "taken@example.com", user.ID).Return(true, nil)

		_, err := f.service.UpdateProfile(ctx, policy.NewCaller(user), user.ID, &usecase.UpdateProfileInput{
			Email: ptr(" taken@example.com "),
		})

		requireFieldError(t, err, "email")
	})

	t.Run("replaces the avatar and removes the old file", func(t *testing.T) {
		f := createTestProfileService(t)
		user := newProfileUser(entity.ProfileTypeCustomer)
		user.Profile.File = "profiles/old-avatar.png"
		content := strings.NewReader("png")

		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		f.store.EXPECT().Put(ctx, constants.StoragePrefixProfiles, "avatar.png", content).
			Return("profiles/new-avatar.png", nil)
		f.userRepo.EXPECT().Update(ctx, user).Return(nil)
		f.store.EXPECT().Delete(ctx, "profiles/old-avatar.png").Return(nil)

		got, err := f.service.UpdateProfile(ctx, policy.NewCaller(user), user.ID, &usecase.UpdateProfileInput{
			File: &usecase.FileUpload{Name: "avatar.png", Content: content},
		})

		require.NoError(t, err)
		assert.Equal(t, "profiles/new-avatar.png", got.Profile.File)
		require.NotNil(t, got.Profile.UploadedAt)
		assert.Equal(t, f.now, *got.Profile.UploadedAt)
	})

	t.Run("keeps a re-uploaded identical file", func(t *testing.T) {
		f := createTestProfileService(t)
		user := newProfileUser(entity.ProfileTypeCustomer)
		user.Profile.File = "profiles/same.png"

		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		f.store.EXPECT().Put(ctx, constants.StoragePrefixProfiles, "same.png", mock.Anything).
			Return("profiles/same.png", nil)
		f.userRepo.EXPECT().Update(ctx, user).Return(nil)

		_, err := f.service.UpdateProfile(ctx, policy.NewCaller(user), user.ID, &usecase.UpdateProfileInput{
			File: &usecase.FileUpload{Name: "same.png", Content: strings.NewReader("png")},
		})

		require.NoError(t, err)
		f.store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("removes the new file when the update fails", func(t *testing.T) {
		f := createTestProfileService(t)
		user := newProfileUser(entity.ProfileTypeCustomer)
		user.Profile.File = "profiles/old.png"

		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		f.store.EXPECT().Put(ctx, constants.StoragePrefixProfiles, "new.png", mock.Anything).
			Return("profiles/new.png", nil)
		f.userRepo.EXPECT().Update(ctx, user).Return(errors.New("connection reset"))
		f.store.EXPECT().Delete(ctx, "profiles/new.png").Return(nil)

		_, err := f.service.UpdateProfile(ctx, policy.NewCaller(user), user.ID, &usecase.UpdateProfileInput{
			File: &usecase.FileUpload{Name: "new.png", Content: strings.NewReader("png")},
		})

		require.Error(t, err)
	})
}

func TestProfileService_ListProfiles(t *testing.T) {
	ctx := context.Background()
	f := createTestProfileService(t)
	users := []*entity.User{newProfileUser(entity.ProfileTypeBusiness)}
	page := repository.Page{Offset: 0, Limit: 6}

	f.userRepo.EXPECT().ListByProfileType(ctx, entity.ProfileTypeBusiness, page).Return(users, int64(1), nil)

	got, total, err := f.service.ListProfiles(ctx, entity.ProfileTypeBusiness, page)

	require.NoError(t, err)
	assert.Equal(t, users, got)
	assert.Equal(t, int64(1), total)
}
