// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "coderr/internal/delivery/context"
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

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the account, its profile and credential, and its first token in one transaction.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("type", input.Type.String()))

	if err := srv.validateRegistration(input); err != nil {
		return nil, err
	}

	// Hash outside the transaction, bcrypt is CPU-bound.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		authRepo := repoFactory.NewAuthRepository()

		if err := srv.checkIdentityAvailable(ctx, userRepo, input); err != nil {
			return err
		}

		newUser := &entity.User{
			Username: input.Username,
			Email:    input.Email,
			Profile:  &entity.Profile{Type: input.Type},
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrUserConflict) {
				return domainerrors.NewValidationError("username", "A user with that username or email already exists.")
			}

			return errors.Wrap(err, "failed to create user during registration")
		}

		newAuth := &entity.Authentication{
			UserID:       newUser.ID,
			PasswordHash: hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication during registration")
		}

		token, err := srv.issueToken(ctx, authRepo, newUser)
		if err != nil {
			return err
		}
		output = newAuthOutput(newUser, token)

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", output.UserID))

	return output, nil
}

func (srv *authService) validateRegistration(input *usecase.RegisterInput) error {
	validationErr := domainerrors.NewValidationErrors(nil)

	if !input.Type.IsValid() {
		validationErr.Add("type", "\""+input.Type.String()+"\" is not a valid choice.")
	}
	if input.Password != input.RepeatedPassword {
		validationErr.Add("repeated_password", "Passwords do not match.")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		strengthErr, ok := errors.AsType[*domainerrors.ValidationError](err)
		if !ok {
			return errors.Wrap(err, "failed to validate password strength")
		}
		for _, message := range strengthErr.FieldErrors()["password"] {
			validationErr.Add("password", message)
		}
	}

	if len(validationErr.FieldErrors()) > 0 {
		return validationErr
	}

	return nil
}

func (srv *authService) checkIdentityAvailable(ctx context.Context, userRepo repository.UserRepository, input *usecase.RegisterInput) error {
	validationErr := domainerrors.NewValidationErrors(nil)

	emailTaken, err := userRepo.ExistsByEmail(ctx, input.Email, uuid.Nil)
	if err != nil {
		return errors.Wrap(err, "failed to check email")
	}
	if emailTaken {
		validationErr.Add("email", "Email is already in use.")
	}

	usernameTaken, err := userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return errors.Wrap(err, "failed to check username")
	}
	if usernameTaken {
		validationErr.Add("username", "A user with that username already exists.")
	}

	if len(validationErr.FieldErrors()) > 0 {
		return validationErr
	}

	return nil
}

// Login checks the password and hands out the stored token, issuing a new one when it expired.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("username", input.Username))

	var (
		loggedInUser *entity.User
		authRecord   *entity.Authentication
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.NewUserRepository().FindByUsernameOrEmail(ctx, strings.TrimSpace(input.Username))
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find user")
		}

		auth, err := repoFactory.NewAuthRepository().FindAuthentication(ctx, user.ID)
		if err != nil {
			if errors.Is(err, repository.ErrAuthNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find authentication")
		}

		loggedInUser, authRecord = user, auth

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "login failed")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.NewAuthRepository()

		stored, err := authRepo.FindTokenByUserID(ctx, loggedInUser.ID)
		if err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
			return errors.Wrap(err, "failed to find token")
		}
		if stored.IsValidAt(srv.now()) {
			output = newAuthOutput(loggedInUser, stored.Token)

			return nil
		}

		token, err := srv.issueToken(ctx, authRepo, loggedInUser)
		if err != nil {
			return err
		}
		output = newAuthOutput(loggedInUser, token)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to hand out token", slog.Any("userID", loggedInUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hand out token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return output, nil
}

// Authenticate accepts a token only when its signature is valid and it is the user's stored token.
func (srv *authService) Authenticate(ctx context.Context, token string) (*policy.Caller, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Rejected bearer token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	var caller policy.Caller
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		stored, err := repoFactory.NewAuthRepository().FindToken(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrTokenNotFound) {
				return domainerrors.ErrInvalidToken
			}

			return errors.Wrap(err, "failed to find token")
		}
		if stored.UserID != claims.UserID || !stored.IsValidAt(srv.now()) {
			return domainerrors.ErrInvalidToken
		}

		user, err := repoFactory.NewUserRepository().FindByID(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidToken
			}

			return errors.Wrap(err, "failed to find user")
		}
		caller = policy.NewCaller(user)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to authenticate")
	}

	return &caller, nil
}

func (srv *authService) issueToken(ctx context.Context, authRepo repository.AuthRepository, user *entity.User) (string, error) {
	token, expiresAt, err := srv.tokenService.GenerateToken(user.ID, user.Roles().Strings())
	if err != nil {
		srv.log(ctx).Error("Failed to generate token", slog.Any("userID", user.ID), slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	if err := authRepo.SaveToken(ctx, &entity.AuthToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", errors.Wrap(err, "failed to store token")
	}

	return token, nil
}

func newAuthOutput(user *entity.User, token string) *usecase.AuthOutput {
	return &usecase.AuthOutput{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}
}
