package valueobject

import (
	"strings"

	"github.com/goidm/identity-backend/pkg/apperrors"
)

// EmailContact pairs a display name with a validated Email, the way an email
// recipient or sender appears on the wire.
type EmailContact struct {
	name  string
	email Email
}

// NewEmailContact builds a contact from a non-blank name and a valid Email.
func NewEmailContact(name string, email Email) (EmailContact, error) {
	if strings.TrimSpace(name) == "" {
		return EmailContact{}, apperrors.Invalid(apperrors.CodeNameCannotBeEmpty)
	}
	if email.IsZero() {
		return EmailContact{}, apperrors.Invalid(apperrors.CodeEmailCannotBeEmpty)
	}
	return EmailContact{name: name, email: email}, nil
}

func (c EmailContact) Name() string { return c.name }

func (c EmailContact) Email() Email { return c.email }

// String renders the contact in "Name <address>" form.
func (c EmailContact) String() string {
	return c.name + " <" + c.email.Value() + ">"
}

// Equals compares name and address by value.
func (c EmailContact) Equals(other EmailContact) bool {
	return c.name == other.name && c.email.Equals(other.email)
}
