package entity

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goidm/identity-backend/pkg/apperrors"
)

func TestNewUserToken(t *testing.T) {
	t.Parallel()

	user := newTestUser(t)

	token, err := NewUserToken(user, TokenTypeAccountVerification, 360)
	require.NoError(t, err)

	assert.Equal(t, user.ID, token.UserID)
	assert.Equal(t, TokenTypeAccountVerification, token.Type)
	assert.False(t, token.Used)
	assert.False(t, token.Revoked)
	assert.True(t, token.IsLive())

	raw, err := base64.StdEncoding.DecodeString(token.Token)
	require.NoError(t, err)
	assert.Len(t, raw, 32, "token should carry 256 bits of randomness")

	remaining := time.Until(token.ExpirationDate)
	assert.InDelta(t, (360 * time.Minute).Seconds(), remaining.Seconds(), 5)
}

func TestNewUserToken_NilUser(t *testing.T) {
	t.Parallel()

	_, err := NewUserToken(nil, TokenTypeAccountVerification, 60)
	assert.ErrorIs(t, err, ErrNilUser)
}

func TestNewUserToken_InvalidInputs(t *testing.T) {
	t.Parallel()

	user := newTestUser(t)

	tests := []struct {
		name       string
		tokenType  TokenType
		expiration int
		wantCode   apperrors.Code
	}{
		{name: "negative type", tokenType: TokenType(-1), expiration: 60, wantCode: apperrors.CodeInvalidUserTokenType},
		{name: "unknown type", tokenType: TokenType(99), expiration: 60, wantCode: apperrors.CodeInvalidUserTokenType},
		{name: "zero expiration", tokenType: TokenTypeAccountVerification, expiration: 0, wantCode: apperrors.CodeInvalidUserTokenExpiration},
		{name: "negative expiration", tokenType: TokenTypeAccountVerification, expiration: -10, wantCode: apperrors.CodeInvalidUserTokenExpiration},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewUserToken(user, tt.tokenType, tt.expiration)
			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestNewUserToken_ValuesAreUnique(t *testing.T) {
	t.Parallel()

	user := newTestUser(t)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewUserToken(user, TokenTypeAccountVerification, 60)
		require.NoError(t, err)
		require.False(t, seen[token.Token], "token values must not repeat")
		seen[token.Token] = true
	}
}

func TestUserToken_Lifecycle(t *testing.T) {
	t.Parallel()

	user := newTestUser(t)
	token, err := NewUserToken(user, TokenTypeAccountVerification, 60)
	require.NoError(t, err)

	token.MarkAsUsed()
	assert.True(t, token.Used)
	assert.False(t, token.IsLive())
	token.MarkAsUsed() // idempotent
	assert.True(t, token.Used)

	token.Revoke()
	assert.True(t, token.Revoked)
	token.Revoke()
	assert.True(t, token.Revoked)
}

func TestUserToken_IsValid(t *testing.T) {
	t.Parallel()

	user := newTestUser(t)
	now := time.Now().UTC()

	fresh := func() *UserToken {
		token, err := NewUserToken(user, TokenTypeAccountVerification, 60)
		require.NoError(t, err)
		return token
	}

	t.Run("live and unexpired", func(t *testing.T) {
		t.Parallel()
		assert.True(t, fresh().IsValid(now))
	})
	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		assert.False(t, fresh().IsValid(now.Add(2*time.Hour)))
	})
	t.Run("used", func(t *testing.T) {
		t.Parallel()
		token := fresh()
		token.MarkAsUsed()
		assert.False(t, token.IsValid(now))
	})
	t.Run("revoked", func(t *testing.T) {
		t.Parallel()
		token := fresh()
		token.Revoke()
		assert.False(t, token.IsValid(now))
	})
}

func TestTokenType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tokenType TokenType
		want      string
	}{
		{TokenTypeNone, "None"},
		{TokenTypeBearer, "Bearer"},
		{TokenTypeRefresh, "Refresh"},
		{TokenTypePasswordReset, "PasswordReset"},
		{TokenTypeAccountVerification, "AccountVerification"},
		{TokenType(42), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tokenType.String())
	}
}

func TestDefaultTokenExpiration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 6*time.Hour, DefaultTokenExpiration)
}
