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

func TestAuthRepository_Authentication(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "anna", entity.ProfileTypeCustomer)

	require.NoError(t, repo.CreateAuthentication(ctx, &entity.Authentication{UserID: user.ID, PasswordHash: "hash"}))

	auth, err := repo.FindAuthentication(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", auth.PasswordHash)

	_, err = repo.FindAuthentication(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAuthNotFound)
}

func TestAuthRepository_SaveTokenReplacesPrevious(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "anna", entity.ProfileTypeCustomer)
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	require.NoError(t, repo.SaveToken(ctx, &entity.AuthToken{UserID: user.ID, Token: "first", ExpiresAt: expires}))
	require.NoError(t, repo.SaveToken(ctx, &entity.AuthToken{UserID: user.ID, Token: "second", ExpiresAt: expires}))

	token, err := repo.FindTokenByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", token.Token)
	assert.True(t, expires.Equal(token.ExpiresAt))

	byValue, err := repo.FindToken(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byValue.UserID)

	_, err = repo.FindToken(ctx, "first")
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
}
