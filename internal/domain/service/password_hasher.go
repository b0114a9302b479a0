// Package service defines the ports the usecases need from infrastructure.
package service

// PasswordHasher hashes account passwords and enforces the password policy
// applied at registration.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash.
	Check(password, hash string) bool

	// ValidatePasswordStrength returns a validation error on the password
	// field listing every policy rule password breaks.
	ValidatePasswordStrength(password string) error
}
