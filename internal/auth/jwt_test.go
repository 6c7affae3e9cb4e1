package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "sportmeet")

	token, err := manager.Generate(42, "ayse@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "ayse@example.com", claims.Email)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "sportmeet", claims.Issuer)
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "sportmeet")

	_, err := manager.Generate(0, "ayse@example.com")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Generate(42, "")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-one", time.Hour, "sportmeet")
	verifier := NewJWTManager("secret-two", time.Hour, "sportmeet")

	token, err := issuer.Generate(1, "user@example.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, "sportmeet")

	token, err := manager.Generate(1, "user@example.com")
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsEmptyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "sportmeet")

	_, err := manager.Validate("   ")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	token, err = TokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = TokenFromHeader("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromHeader("Basic abc")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromHeader("Bearer")
	require.ErrorIs(t, err, ErrMissingToken)
}
