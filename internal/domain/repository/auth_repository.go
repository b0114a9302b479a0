package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for authentication persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAuthNotFound is returned when a user has no password credential.
	ErrAuthNotFound = errors.New("authentication method not found")
	// ErrTokenNotFound is returned when no bearer token is stored.
	ErrTokenNotFound = errors.New("auth token not found")
)

// AuthRepository defines the standard operations for authentication-related persistence.
type AuthRepository interface {
	// CreateAuthentication persists the password credential of a user.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves the password credential of a user.
	FindAuthentication(ctx context.Context, userID uuid.UUID) (*entity.Authentication, error)

	// FindTokenByUserID retrieves the stored bearer token of a user.
	FindTokenByUserID(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error)

	// FindToken retrieves a stored bearer token by its value.
	FindToken(ctx context.Context, token string) (*entity.AuthToken, error)

	// SaveToken stores token as the user's bearer token, replacing any previous one.
	SaveToken(ctx context.Context, token *entity.AuthToken) error
}
