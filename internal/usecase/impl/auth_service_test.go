package impl

import (
	"context"
	"testing"
	"time"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	mockSvc "coderr/internal/mocks/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceFixture struct {
	*serviceMocks
	hasher  *mockSvc.MockPasswordHasher
	tokens  *mockSvc.MockTokenService
	service *authService
	now     time.Time
}

func createTestAuthService(t *testing.T) *authServiceFixture {
	mocks := newServiceMocks(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokens := mockSvc.NewMockTokenService(t)

	srv := NewAuthService(AuthServiceParams{
		TxManager:    mocks.txManager,
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	}).(*authService)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return now }

	return &authServiceFixture{
		serviceMocks: mocks,
		hasher:       hasher,
		tokens:       tokens,
		service:      srv,
		now:          now,
	}
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:         "anna",
		Email:            "anna@example.com",
		Password:         "Secret123!",
		RepeatedPassword: "Secret123!",
		Type:             entity.ProfileTypeBusiness,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user, credential and token", func(t *testing.T) {
		f := createTestAuthService(t)
		input := validRegisterInput()
		userID := uuid.New()
		expiresAt := f.now.Add(time.Hour)

		f.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
		f.hasher.EXPECT().Hash(input.Password).Return("hashed", nil)
		f.userRepo.EXPECT().ExistsByEmail(ctx, input.Email, uuid.Nil).Return(false, nil)
		f.userRepo.EXPECT().ExistsByUsername(ctx, input.Username).Return(false, nil)
		f.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
			Run(func(_ context.Context, user *entity.User) {
				assert.Equal(t, entity.ProfileTypeBusiness, user.Profile.Type)
				user.ID = userID
			}).
			Return(nil)
		f.authRepo.EXPECT().CreateAuthentication(ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
			return auth.UserID == userID && auth.PasswordHash == "hashed"
		})).Return(nil)
		f.tokens.EXPECT().GenerateToken(userID, []string{"business"}).Return("token-1", expiresAt, nil)
		f.authRepo.EXPECT().SaveToken(ctx, &entity.AuthToken{UserID: userID, Token: "token-1", ExpiresAt: expiresAt}).Return(nil)

		output, err := f.service.Register(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, &usecase.AuthOutput{
			Token:    "token-1",
			Username: "anna",
			Email:    "anna@example.com",
			UserID:   userID,
		}, output)
	})

	t.Run("rejects mismatched passwords before touching storage", func(t *testing.T) {
		f := createTestAuthService(t)
		input := validRegisterInput()
		input.RepeatedPassword = "other"

		f.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)

		_, err := f.service.Register(ctx, input)

		requireFieldError(t, err, "repeated_password")
	})

	t.Run("collects type and strength messages together", func(t *testing.T) {
		f := createTestAuthService(t)
		input := validRegisterInput()
		input.Type = "admin"

		f.hasher.EXPECT().ValidatePasswordStrength(input.Password).
			Return(domainerrors.NewValidationError("password", "Password is too short."))

		_, err := f.service.Register(ctx, input)

		requireFieldError(t, err, "type")
		requireFieldError(t, err, "password")
	})

	t.Run("reports taken email and username", func(t *testing.T) {
		f := createTestAuthService(t)
		input := validRegisterInput()

		f.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
		f.hasher.EXPECT().Hash(input.Password).Return("hashed", nil)
		f.userRepo.EXPECT().ExistsByEmail(ctx, input.Email, uuid.Nil).Return(true, nil)
		f.userRepo.EXPECT().ExistsByUsername(ctx, input.Username).Return(true, nil)

		_, err := f.service.Register(ctx, input)

		requireFieldError(t, err, "email")
		requireFieldError(t, err, "username")
	})

	t.Run("maps a racing unique violation to a username error", func(t *testing.T) {
		f := createTestAuthService(t)
		input := validRegisterInput()

		f.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
		f.hasher.EXPECT().Hash(input.Password).Return("hashed", nil)
		f.userRepo.EXPECT().ExistsByEmail(ctx, input.Email, uuid.Nil).Return(false, nil)
		f.userRepo.EXPECT().ExistsByUsername(ctx, input.Username).Return(false, nil)
		f.userRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrUserConflict)

		_, err := f.service.Register(ctx, input)

		requireFieldError(t, err, "username")
	})

	t.Run("hash failure", func(t *testing.T) {
		f := createTestAuthService(t)
		input := validRegisterInput()

		f.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
		f.hasher.EXPECT().Hash(input.Password).Return("", errors.New("boom"))

		_, err := f.service.Register(ctx, input)

		assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{
		ID:       uuid.New(),
		Username: "anna",
		Email:    "anna@example.com",
		Profile:  &entity.Profile{Type: entity.ProfileTypeCustomer},
	}
	authRecord := &entity.Authentication{UserID: user.ID, PasswordHash: "hashed"}

	t.Run("reuses a valid stored token", func(t *testing.T) {
		f := createTestAuthService(t)

		f.userRepo.EXPECT().FindByUsernameOrEmail(ctx, "anna").Return(user, nil)
		f.authRepo.EXPECT().FindAuthentication(ctx, user.ID).Return(authRecord, nil)
		f.hasher.EXPECT().Check("Secret123!", "hashed").Return(true)
		f.authRepo.EXPECT().FindTokenByUserID(ctx, user.ID).
			Return(&entity.AuthToken{UserID: user.ID, Token: "stored", ExpiresAt: f.now.Add(time.Minute)}, nil)

		output, err := f.service.Login(ctx, &usecase.LoginInput{Username: " anna ", Password: "Secret123!"})

		require.NoError(t, err)
		assert.Equal(t, "stored", output.Token)
		assert.Equal(t, user.ID, output.UserID)
	})

	t.Run("issues a new token once the stored one expired", func(t *testing.T) {
		f := createTestAuthService(t)
		expiresAt := f.now.Add(time.Hour)

		f.userRepo.EXPECT().FindByUsernameOrEmail(ctx, "anna@example.com").Return(user, nil)
		f.authRepo.EXPECT().FindAuthentication(ctx, user.ID).Return(authRecord, nil)
		f.hasher.EXPECT().Check("Secret123!", "hashed").Return(true)
		f.authRepo.EXPECT().FindTokenByUserID(ctx, user.ID).
			Return(&entity.AuthToken{UserID: user.ID, Token: "old", ExpiresAt: f.now.Add(-time.Second)}, nil)
		f.tokens.EXPECT().GenerateToken(user.ID, []string{"customer"}).Return("fresh", expiresAt, nil)
		f.authRepo.EXPECT().SaveToken(ctx, mock.MatchedBy(func(token *entity.AuthToken) bool {
			return token.Token == "fresh" && token.ExpiresAt.Equal(expiresAt)
		})).Return(nil)

		output, err := f.service.Login(ctx, &usecase.LoginInput{Username: "anna@example.com", Password: "Secret123!"})

		require.NoError(t, err)
		assert.Equal(t, "fresh", output.Token)
	})

	t.Run("issues a token when none is stored", func(t *testing.T) {
		f := createTestAuthService(t)

		f.userRepo.EXPECT().FindByUsernameOrEmail(ctx, "anna").Return(user, nil)
		f.authRepo.EXPECT().FindAuthentication(ctx, user.ID).Return(authRecord, nil)
		f.hasher.EXPECT().Check("Secret123!", "hashed").Return(true)
		f.authRepo.EXPECT().FindTokenByUserID(ctx, user.ID).Return(nil, repository.ErrTokenNotFound)
		f.tokens.EXPECT().GenerateToken(user.ID, []string{"customer"}).Return("fresh", f.now.Add(time.Hour), nil)
		f.authRepo.EXPECT().SaveToken(ctx, mock.Anything).Return(nil)

		output, err := f.service.Login(ctx, &usecase.LoginInput{Username: "anna", Password: "Secret123!"})

		require.NoError(t, err)
		assert.Equal(t, "fresh", output.Token)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := createTestAuthService(t)

		f.userRepo.EXPECT().FindByUsernameOrEmail(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

		_, err := f.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "x"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := createTestAuthService(t)

		f.userRepo.EXPECT().FindByUsernameOrEmail(ctx, "anna").Return(user, nil)
		f.authRepo.EXPECT().FindAuthentication(ctx, user.ID).Return(authRecord, nil)
		f.hasher.EXPECT().Check("wrong", "hashed").Return(false)

		_, err := f.service.Login(ctx, &usecase.LoginInput{Username: "anna", Password: "wrong"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{
		ID:      uuid.New(),
		IsStaff: true,
		Profile: &entity.Profile{Type: entity.ProfileTypeBusiness},
	}

	t.Run("resolves the caller of a stored token", func(t *testing.T) {
		f := createTestAuthService(t)

		f.tokens.EXPECT().ValidateToken("tok").Return(&service.Claims{UserID: user.ID}, nil)
		f.authRepo.EXPECT().FindToken(ctx, "tok").
			Return(&entity.AuthToken{UserID: user.ID, Token: "tok", ExpiresAt: f.now.Add(time.Hour)}, nil)
		f.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

		caller, err := f.service.Authenticate(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, user.ID, caller.UserID)
		assert.Equal(t, entity.ProfileTypeBusiness, caller.Type)
		assert.True(t, caller.IsStaff)
	})

	t.Run("rejects an invalid signature", func(t *testing.T) {
		f := createTestAuthService(t)

		f.tokens.EXPECT().ValidateToken("bad").Return(nil, errors.New("signature is invalid"))

		_, err := f.service.Authenticate(ctx, "bad")

		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	})

	t.Run("rejects a replaced token", func(t *testing.T) {
		f := createTestAuthService(t)

		f.tokens.EXPECT().ValidateToken("old").Return(&service.Claims{UserID: user.ID}, nil)
		f.authRepo.EXPECT().FindToken(ctx, "old").Return(nil, repository.ErrTokenNotFound)

		_, err := f.service.Authenticate(ctx, "old")

		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	})

	t.Run("rejects a token stored for another user", func(t *testing.T) {
		f := createTestAuthService(t)

		f.tokens.EXPECT().ValidateToken("tok").Return(&service.Claims{UserID: uuid.New()}, nil)
		f.authRepo.EXPECT().FindToken(ctx, "tok").
			Return(&entity.AuthToken{UserID: user.ID, Token: "tok", ExpiresAt: f.now.Add(time.Hour)}, nil)

		_, err := f.service.Authenticate(ctx, "tok")

		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	})
}
