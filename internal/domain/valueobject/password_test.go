package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goidm/identity-backend/pkg/apperrors"
)

func TestNewPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		plaintext string
		wantCode  apperrors.Code
	}{
		{name: "valid", plaintext: "Sup3rSecret!"},
		{name: "empty", plaintext: "", wantCode: apperrors.CodePasswordCannotBeEmpty},
		{name: "blank", plaintext: "    ", wantCode: apperrors.CodePasswordCannotBeEmpty},
		{name: "too short", plaintext: "Ab1!", wantCode: apperrors.CodePasswordTooShort},
		{name: "multibyte runes counted not bytes", plaintext: "Áá1!Aa", wantCode: apperrors.CodePasswordTooShort},
		{name: "exactly 8 multibyte runes", plaintext: "Áá1!Aaéè"},
		{name: "no uppercase", plaintext: "sup3rsecret!", wantCode: apperrors.CodePasswordMustContainUpperCase},
		{name: "no lowercase", plaintext: "SUP3RSECRET!", wantCode: apperrors.CodePasswordMustContainLowerCase},
		{name: "no digit", plaintext: "SuperSecret!", wantCode: apperrors.CodePasswordMustContainDigit},
		{name: "no special", plaintext: "Sup3rSecret", wantCode: apperrors.CodePasswordMustContainSpecialCharacter},
		{name: "space counts as special", plaintext: "Sup3r Secret"},
		{name: "unicode letters count", plaintext: "Sup3rSecrét!"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewPassword(tt.plaintext)
			if tt.wantCode != "" {
				var appErr *apperrors.Error
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				assert.True(t, p.IsZero())
				return
			}
			require.NoError(t, err)
			assert.False(t, p.IsZero())
		})
	}
}

// A short password missing every other rule reports the length failure first.
func TestNewPassword_FirstFailingRuleWins(t *testing.T) {
	t.Parallel()

	_, err := NewPassword("a")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodePasswordTooShort, appErr.Code)
}

func TestPassword_Validate(t *testing.T) {
	t.Parallel()

	p, err := NewPassword("Sup3rSecret!")
	require.NoError(t, err)

	assert.True(t, p.Validate("Sup3rSecret!"))
	assert.False(t, p.Validate("Sup3rSecret?"))
	assert.False(t, p.Validate(""))
}

func TestPassword_Equals(t *testing.T) {
	t.Parallel()

	a, err := NewPassword("Sup3rSecret!")
	require.NoError(t, err)
	b, err := NewPassword("Sup3rSecret!")
	require.NoError(t, err)
	c, err := NewPassword("Other3Secret!")
	require.NoError(t, err)

	assert.True(t, a.Equals(b), "same plaintext should hash to the same value")
	assert.False(t, a.Equals(c))
}

func TestPassword_PlaintextNotRetained(t *testing.T) {
	t.Parallel()

	p, err := NewPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotContains(t, p.Hash(), "Sup3rSecret")
	assert.NotContains(t, p.String(), "Sup3rSecret")
}

func TestPasswordFromHash_RoundTrip(t *testing.T) {
	t.Parallel()

	p, err := NewPassword("Sup3rSecret!")
	require.NoError(t, err)

	restored := PasswordFromHash(p.Hash())
	assert.True(t, restored.Equals(p))
	assert.True(t, restored.Validate("Sup3rSecret!"))
}
