// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username  string    // Unique login name.
	Email     string    // Unique contact email, also accepted as a login identifier.
	FirstName string
	LastName  string
	IsStaff   bool     // Administrative privilege.
	Profile   *Profile // The role profile created together with the account.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileType tags a profile as a customer or a business account.
type ProfileType string

const (
	// ProfileTypeCustomer is a buyer account.
	ProfileTypeCustomer ProfileType = "customer"
	// ProfileTypeBusiness is a seller account that publishes offers.
	ProfileTypeBusiness ProfileType = "business"
)

// String returns the string representation of the ProfileType.
func (p ProfileType) String() string {
	return string(p)
}

// IsValid checks if the ProfileType is a valid value.
func (p ProfileType) IsValid() bool {
	switch p {
	case ProfileTypeCustomer, ProfileTypeBusiness:
		return true
	default:
		return false
	}
}

// Profile holds the marketplace-facing data of a user. Exactly one exists per user
// and its Type never changes after registration.
type Profile struct {
	UserID       uuid.UUID
	Type         ProfileType
	File         string     // Content store key of the avatar, empty when none was uploaded.
	UploadedAt   *time.Time // When File was last replaced.
	Location     string
	Tel          string
	Description  string
	WorkingHours string
	CreatedAt    time.Time
}

// HasFile reports whether an avatar is stored for the profile.
func (p *Profile) HasFile() bool {
	return p != nil && p.File != ""
}

// ProfileType returns the user's profile type, or an empty value when the profile is not loaded.
func (u *User) ProfileType() ProfileType {
	if u == nil || u.Profile == nil {
		return ""
	}

	return u.Profile.Type
}

// Roles returns the roles carried in the user's tokens.
func (u *User) Roles() Roles {
	return RolesFor(u.ProfileType(), u.IsStaff)
}
