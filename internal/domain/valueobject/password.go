package valueobject

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goidm/identity-backend/pkg/apperrors"
)

// Password holds only a one-way hash of the original secret. The plaintext is
// hashed at construction and never retained.
type Password struct {
	hash string
}

// NewPassword validates the plaintext complexity rules and returns the hashed
// Password. Checks run in a fixed order and the first failing check wins:
// empty, length, upper, lower, digit, special.
func NewPassword(plaintext string) (Password, error) {
	if strings.TrimSpace(plaintext) == "" {
		return Password{}, apperrors.Invalid(apperrors.CodePasswordCannotBeEmpty)
	}
	if utf8.RuneCountInString(plaintext) < 8 {
		return Password{}, apperrors.Invalid(apperrors.CodePasswordTooShort)
	}
	if !containsFunc(plaintext, unicode.IsUpper) {
		return Password{}, apperrors.Invalid(apperrors.CodePasswordMustContainUpperCase)
	}
	if !containsFunc(plaintext, unicode.IsLower) {
		return Password{}, apperrors.Invalid(apperrors.CodePasswordMustContainLowerCase)
	}
	if !containsFunc(plaintext, unicode.IsDigit) {
		return Password{}, apperrors.Invalid(apperrors.CodePasswordMustContainDigit)
	}
	if !containsFunc(plaintext, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) {
		return Password{}, apperrors.Invalid(apperrors.CodePasswordMustContainSpecialCharacter)
	}
	return Password{hash: hashPassword(plaintext)}, nil
}

// PasswordFromHash rebuilds a Password from a hash previously produced by
// NewPassword. Used by the persistence layer only.
func PasswordFromHash(hash string) Password {
	return Password{hash: hash}
}

func hashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}

// Hash returns the stored hash.
func (p Password) Hash() string { return p.hash }

func (p Password) String() string { return p.hash }

// Validate re-hashes the candidate and compares it to the stored hash in
// constant time.
func (p Password) Validate(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(p.hash), []byte(hashPassword(candidate))) == 1
}

// Equals reports whether both passwords hash to the same value.
func (p Password) Equals(other Password) bool { return p.hash == other.hash }

// IsZero reports whether the password was never constructed through NewPassword.
func (p Password) IsZero() bool { return p.hash == "" }
