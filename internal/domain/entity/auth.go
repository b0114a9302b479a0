// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Authentication is the password credential of a user.
type Authentication struct {
	ID           uuid.UUID // The unique ID for this credential record.
	UserID       uuid.UUID // Links this credential to the User it belongs to.
	PasswordHash string    // Stores the bcrypt-hashed password.
	CreatedAt    time.Time
}

// AuthToken is the single bearer credential stored for a user. Login hands it out
// again for as long as it has not expired.
type AuthToken struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsValidAt reports whether the token can still be used at the given instant.
func (t *AuthToken) IsValidAt(now time.Time) bool {
	return t != nil && t.Token != "" && now.Before(t.ExpiresAt)
}
