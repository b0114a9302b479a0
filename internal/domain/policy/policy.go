// Package policy decides whether a caller may perform an action on a resource.
// Each check takes the caller, the action, and the owner of the target resource.
package policy

import (
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"

	"github.com/google/uuid"
)

// Action names a guarded operation.
type Action string

const (
	ProfileUpdate Action = "profile:update"
	OfferCreate   Action = "offer:create"
	OfferUpdate   Action = "offer:update"
	OfferDelete   Action = "offer:delete"
	OrderCreate   Action = "order:create"
	OrderUpdate   Action = "order:update"
	OrderDelete   Action = "order:delete"
	ReviewCreate  Action = "review:create"
	ReviewUpdate  Action = "review:update"
	ReviewDelete  Action = "review:delete"
)

// Caller is the authenticated identity making a request.
type Caller struct {
	UserID  uuid.UUID
	Type    entity.ProfileType
	IsStaff bool
}

// NewCaller builds a caller from a user loaded with its profile.
func NewCaller(user *entity.User) Caller {
	return Caller{
		UserID:  user.ID,
		Type:    user.ProfileType(),
		IsStaff: user.IsStaff,
	}
}

// Allowed reports whether caller may perform action on a resource owned by owner.
// owner is uuid.Nil for actions that do not target an existing resource.
func Allowed(caller Caller, action Action, owner uuid.UUID) bool {
	switch action {
	case OfferCreate:
		return caller.Type == entity.ProfileTypeBusiness
	case OrderCreate, ReviewCreate:
		return caller.Type == entity.ProfileTypeCustomer
	case OrderDelete:
		return caller.IsStaff
	case ProfileUpdate, OfferUpdate, OfferDelete, OrderUpdate, ReviewUpdate, ReviewDelete:
		return owner != uuid.Nil && caller.UserID == owner
	default:
		return false
	}
}

// Check returns ErrForbidden when caller may not perform action.
func Check(caller Caller, action Action, owner uuid.UUID) error {
	if Allowed(caller, action, owner) {
		return nil
	}

	return domainerrors.ErrForbidden
}
