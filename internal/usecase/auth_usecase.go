// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/policy"

	"github.com/google/uuid"
)

// AuthUsecase defines registration, login and token authentication.
type AuthUsecase interface {
	// Register creates a user, its profile and password credential, and issues a token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login checks credentials and returns the user's token, reusing it while valid.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Authenticate resolves a bearer token to the calling identity.
	Authenticate(ctx context.Context, token string) (*policy.Caller, error)
}

// --- Input DTOs ---

// RegisterInput defines the data required to register an account.
type RegisterInput struct {
	Username         string
	Email            string
	Password         string
	RepeatedPassword string
	Type             entity.ProfileType
}

// LoginInput defines the data required to log in. Username may also be an email.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by registration and login.
type AuthOutput struct {
	Token    string
	Username string
	Email    string
	UserID   uuid.UUID
}
