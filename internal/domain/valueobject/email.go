// Package valueobject holds the immutable value types of the identity domain.
// Values are compared by content, never by identity, and are only ever built
// through their validating constructors.
package valueobject

import (
	"net/mail"
	"strings"

	"github.com/goidm/identity-backend/pkg/apperrors"
)

// Email is a validated, normalized email address.
type Email struct {
	value string
}

// NewEmail parses and normalizes raw into an Email. A display-name wrapper
// ("Alice <alice@example.com>") is stripped; the domain part is lowercased so
// equal addresses compare equal regardless of input casing.
func NewEmail(raw string) (Email, error) {
	if strings.TrimSpace(raw) == "" {
		return Email{}, apperrors.Invalid(apperrors.CodeEmailCannotBeEmpty)
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return Email{}, apperrors.Invalid(apperrors.CodeInvalidEmailFormat)
	}
	return Email{value: normalize(addr.Address)}, nil
}

func normalize(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return address
	}
	return address[:at+1] + strings.ToLower(address[at+1:])
}

// Value returns the normalized address.
func (e Email) Value() string { return e.value }

func (e Email) String() string { return e.value }

// Equals reports whether both emails hold the same normalized address.
func (e Email) Equals(other Email) bool { return e.value == other.value }

// IsZero reports whether the email was never constructed through NewEmail.
func (e Email) IsZero() bool { return e.value == "" }
