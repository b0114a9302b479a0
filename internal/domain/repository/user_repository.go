// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserConflict is returned when a unique username or email is already taken.
	ErrUserConflict = errors.New("user already exists")
)

// UserRepository defines the standard operations for user persistence.
// Users are always loaded together with their profile.
type UserRepository interface {
	// Create persists a new user and its profile.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsernameOrEmail retrieves a user whose username or email equals identity.
	FindByUsernameOrEmail(ctx context.Context, identity string) (*entity.User, error)

	// ExistsByEmail reports whether another user than excludeID owns the email.
	// Pass uuid.Nil to check against every user.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// ExistsByUsername reports whether the username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Update writes the mutable user and profile fields.
	Update(ctx context.Context, user *entity.User) error

	// ListByProfileType returns one page of users with the given profile type and the total count.
	ListByProfileType(ctx context.Context, profileType entity.ProfileType, page Page) ([]*entity.User, int64, error)

	// CountByProfileType counts the profiles of the given type.
	CountByProfileType(ctx context.Context, profileType entity.ProfileType) (int64, error)
}
