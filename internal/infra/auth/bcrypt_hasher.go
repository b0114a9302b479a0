// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"coderr/config"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/service"
	"coderr/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

const passwordField = "password"

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	var strength config.PasswordStrengthConfig
	if cfg.PasswordStrength != nil {
		strength = *cfg.PasswordStrength
	}

	return NewBcryptHasherWithCost(cost, strength)
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost and strength policy.
func NewBcryptHasherWithCost(cost int, strength config.PasswordStrengthConfig) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost, strength: strength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// ValidatePasswordStrength reports every unmet rule as a message on the password field.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	var messages []string
	rules := h.strength

	length := utf8.RuneCountInString(password)
	if rules.MinLength > 0 && length < rules.MinLength {
		messages = append(messages, fmt.Sprintf("Password must be at least %d characters long.", rules.MinLength))
	}
	if rules.MaxLength > 0 && length > rules.MaxLength {
		messages = append(messages, fmt.Sprintf("Password must be at most %d characters long.", rules.MaxLength))
	}
	if rules.RequireUppercase && !hasUppercase(password) {
		messages = append(messages, "Password must contain at least one uppercase letter.")
	}
	if rules.RequireLowercase && !hasLowercase(password) {
		messages = append(messages, "Password must contain at least one lowercase letter.")
	}
	if rules.RequireNumbers && !hasNumbers(password) {
		messages = append(messages, "Password must contain at least one number.")
	}
	if rules.RequireSpecial && !hasSpecialChars(password) {
		messages = append(messages, "Password must contain at least one special character.")
	}
	if containsForbiddenWords(password, rules.ForbiddenWords) {
		messages = append(messages, "Password contains forbidden words.")
	}

	if len(messages) == 0 {
		return nil
	}

	return domainerrors.NewValidationErrors(map[string][]string{passwordField: messages})
}

func hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) >= 0
}

func containsForbiddenWords(password string, words []string) bool {
	lower := strings.ToLower(password)
	for _, word := range words {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}

	return false
}
