// Package entity defines the aggregates of the identity domain. User is the
// aggregate root and the only mutation entry point for its owned tokens.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goidm/identity-backend/internal/domain/valueobject"
	"github.com/goidm/identity-backend/pkg/apperrors"
)

// User is the aggregate root for the identity domain. A freshly registered
// user is inactive until the account-verification token is redeemed.
type User struct {
	ID        string
	Username  string
	Email     valueobject.Email
	Password  valueobject.Password
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	LastLogin *time.Time

	tokens []*UserToken
}

// NewUser builds a user with a fresh id, inactive, timestamps set to now.
func NewUser(username string, email valueobject.Email, password valueobject.Password) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.Invalid(apperrors.CodeUsernameCannotBeEmpty)
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  password,
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Tokens returns the owned token collection. Mutation goes through AddToken.
func (u *User) Tokens() []*UserToken { return u.tokens }

// RestoreTokens reattaches persisted tokens to a rehydrated aggregate. Used by
// the persistence layer only.
func (u *User) RestoreTokens(tokens []*UserToken) { u.tokens = tokens }

func (u *User) touch() { u.UpdatedAt = time.Now().UTC() }

// Activate marks the account active. Calling it twice is a no-op beyond the
// timestamp refresh.
func (u *User) Activate() {
	u.IsActive = true
	u.touch()
}

// UpdateLastLogin records a successful login.
func (u *User) UpdateLastLogin() {
	now := time.Now().UTC()
	u.LastLogin = &now
	u.touch()
}

// AddToken attaches a freshly minted token to the aggregate, enforcing at most
// one live (unused, unrevoked) token per type. When a live token of the same
// type exists it is revoked if revokeExisting is true, otherwise AddToken
// fails and the collection is left untouched.
func (u *User) AddToken(token *UserToken, revokeExisting bool) error {
	for _, existing := range u.tokens {
		if existing.Type == token.Type && existing.IsLive() {
			if !revokeExisting {
				return apperrors.Invalid(apperrors.CodeExistingTokenFound)
			}
			existing.Revoke()
			break
		}
	}
	u.tokens = append(u.tokens, token)
	return nil
}

// LiveToken returns the single live token of the given type, or nil.
func (u *User) LiveToken(tokenType TokenType) *UserToken {
	for _, t := range u.tokens {
		if t.Type == tokenType && t.IsLive() {
			return t
		}
	}
	return nil
}
