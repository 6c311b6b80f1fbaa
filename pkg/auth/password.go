package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost            = 12
	DefaultPasswordSuffix = "123"
	MaxPasswordLen        = 72 // bcrypt input limit
)

// NormalizeName lower-cases a display name and strips all whitespace.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// DefaultPassword derives the password an account has until it is changed.
// accountType and subRole do not influence the result; they are accepted so
// callers pass the full identity. An empty name yields "".
func DefaultPassword(name, accountType, subRole string) string {
	normalized := NormalizeName(name)
	if normalized == "" {
		return ""
	}
	return normalized + DefaultPasswordSuffix
}

// IsHashed reports whether a password carries a bcrypt prefix.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// MatchPassword compares a supplied password against a stored one, which is
// either plaintext or a bcrypt hash. A stored value with a bcrypt prefix that
// does not parse as a hash is compared as plaintext.
func MatchPassword(stored, supplied string) bool {
	if supplied == "" {
		return false
	}
	if IsHashed(stored) {
		if _, err := bcrypt.Cost([]byte(stored)); err == nil {
			return ComparePassword(stored, supplied) == nil
		}
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

func ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
