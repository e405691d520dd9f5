package entity

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/goidm/identity-backend/pkg/apperrors"
)

// ErrNilUser reports a programming error: a token minted without an owner.
var ErrNilUser = errors.New("user token requires an owning user")

// TokenType enumerates the purposes a UserToken can serve.
type TokenType int

const (
	TokenTypeNone TokenType = iota
	TokenTypeBearer
	TokenTypeRefresh
	TokenTypePasswordReset
	TokenTypeAccountVerification
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeNone:
		return "None"
	case TokenTypeBearer:
		return "Bearer"
	case TokenTypeRefresh:
		return "Refresh"
	case TokenTypePasswordReset:
		return "PasswordReset"
	case TokenTypeAccountVerification:
		return "AccountVerification"
	default:
		return "Unknown"
	}
}

func (t TokenType) valid() bool {
	return t >= TokenTypeNone && t <= TokenTypeAccountVerification
}

// DefaultTokenExpiration is applied when the caller does not override the
// expiration window.
const DefaultTokenExpiration = 360 * time.Minute

const tokenRandomBytes = 32 // 256 bits of randomness per token

// UserToken is a single-purpose credential owned by exactly one User. The
// opaque token string is generated once at construction and is immutable
// thereafter. The used and revoked flags only ever move from false to true.
type UserToken struct {
	UserID         string
	Type           TokenType
	Token          string
	ExpirationDate time.Time
	Used           bool
	Revoked        bool
}

// NewUserToken mints a token for user with the given type and expiration
// window in minutes. The token value is 256 bits of crypto/rand output,
// base64-encoded, carrying no embedded metadata.
func NewUserToken(user *User, tokenType TokenType, expirationMinutes int) (*UserToken, error) {
	if user == nil {
		return nil, ErrNilUser
	}
	if !tokenType.valid() {
		return nil, apperrors.Invalid(apperrors.CodeInvalidUserTokenType)
	}
	if expirationMinutes <= 0 {
		return nil, apperrors.Invalid(apperrors.CodeInvalidUserTokenExpiration)
	}
	value, err := secureRandomString(tokenRandomBytes)
	if err != nil {
		return nil, err
	}
	return &UserToken{
		UserID:         user.ID,
		Type:           tokenType,
		Token:          value,
		ExpirationDate: time.Now().UTC().Add(time.Duration(expirationMinutes) * time.Minute),
	}, nil
}

func secureRandomString(sizeInBytes int) (string, error) {
	buf := make([]byte, sizeInBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// MarkAsUsed flips the used flag. Idempotent, one-way.
func (t *UserToken) MarkAsUsed() { t.Used = true }

// Revoke flips the revoked flag. Idempotent, one-way.
func (t *UserToken) Revoke() { t.Revoked = true }

// IsLive reports whether the token is neither used nor revoked. Expiration is
// deliberately not part of liveness; see IsValid.
func (t *UserToken) IsLive() bool { return !t.Used && !t.Revoked }

// IsValid reports whether the token can still be redeemed: live and not past
// its expiration date.
func (t *UserToken) IsValid(now time.Time) bool {
	return t.IsLive() && now.Before(t.ExpirationDate)
}
