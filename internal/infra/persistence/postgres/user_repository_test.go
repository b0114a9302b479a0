package postgres

import (
	"context"
	"testing"
	"time"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "anna", entity.ProfileTypeBusiness)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna", found.Username)
	assert.Equal(t, "anna@example.com", found.Email)
	require.NotNil(t, found.Profile)
	assert.Equal(t, entity.ProfileTypeBusiness, found.Profile.Type)
	assert.Equal(t, user.ID, found.Profile.UserID)
	assert.False(t, found.Profile.CreatedAt.IsZero())

	byEmail, err := repo.FindByUsernameOrEmail(ctx, "ANNA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repo.FindByUsernameOrEmail(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByUsernameOrEmail(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "anna", entity.ProfileTypeCustomer)

	err := NewUserRepository(db).Create(context.Background(), &entity.User{
		Username: "anna",
		Email:    "other@example.com",
		Profile:  &entity.Profile{Type: entity.ProfileTypeCustomer},
	})

	assert.ErrorIs(t, err, repository.ErrUserConflict)
}

func TestUserRepository_Exists(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "anna", entity.ProfileTypeCustomer)

	exists, err := repo.ExistsByEmail(ctx, "Anna@Example.com", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "anna@example.com", user.ID)
	require.NoError(t, err)
	assert.False(t, exists, "own email is not a conflict")

	exists, err = repo.ExistsByUsername(ctx, "anna")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateKeepsProfileType(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "anna", entity.ProfileTypeBusiness)

	uploaded := time.Now().UTC().Truncate(time.Second)
	user.FirstName = "Anna"
	user.Profile.Location = "Berlin"
	user.Profile.File = "profiles/avatar.png"
	user.Profile.UploadedAt = &uploaded
	user.Profile.Type = entity.ProfileTypeCustomer
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", found.FirstName)
	assert.Equal(t, "Berlin", found.Profile.Location)
	assert.Equal(t, "profiles/avatar.png", found.Profile.File)
	require.NotNil(t, found.Profile.UploadedAt)
	assert.True(t, uploaded.Equal(*found.Profile.UploadedAt))
	assert.Equal(t, entity.ProfileTypeBusiness, found.Profile.Type)

	err = repo.Update(ctx, &entity.User{ID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_ListAndCountByProfileType(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seedUser(t, db, "b1", entity.ProfileTypeBusiness)
	seedUser(t, db, "b2", entity.ProfileTypeBusiness)
	seedUser(t, db, "b3", entity.ProfileTypeBusiness)
	seedUser(t, db, "c1", entity.ProfileTypeCustomer)

	users, total, err := repo.ListByProfileType(ctx, entity.ProfileTypeBusiness, repository.Page{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)
	for _, user := range users {
		require.NotNil(t, user.Profile)
		assert.Equal(t, entity.ProfileTypeBusiness, user.Profile.Type)
	}

	users, _, err = repo.ListByProfileType(ctx, entity.ProfileTypeBusiness, repository.Page{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	count, err := repo.CountByProfileType(ctx, entity.ProfileTypeCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
