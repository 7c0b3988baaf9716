package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(time.Hour, "issuer", "audience", "")
	assert.Error(t, err)
}

func TestGenerateAndValidateAdminToken(t *testing.T) {
	svc, err := NewTokenService(time.Hour, "viralizei-plataforma", "viralizei-admin", "test-secret-key")
	require.NoError(t, err)

	token, err := svc.GenerateAdminToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateAdminTokenRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenService(time.Hour, "i", "a", "secret-one")
	require.NoError(t, err)
	verifier, err := NewTokenService(time.Hour, "i", "a", "secret-two")
	require.NoError(t, err)

	token, err := issuer.GenerateAdminToken("admin")
	require.NoError(t, err)

	_, err = verifier.ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAdminTokenRejectsExpired(t *testing.T) {
	svc, err := NewTokenService(-time.Minute, "i", "a", "test-secret-key")
	require.NoError(t, err)

	token, err := svc.GenerateAdminToken("admin")
	require.NoError(t, err)

	_, err = svc.ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAdminTokenRejectsGarbage(t *testing.T) {
	svc, err := NewTokenService(time.Hour, "i", "a", "test-secret-key")
	require.NoError(t, err)

	_, err = svc.ValidateAdminToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc, err := NewTokenService(time.Hour, "i", "a", "test-secret-key")
	require.NoError(t, err)

	first, err := svc.GenerateAdminToken("admin")
	require.NoError(t, err)
	second, err := svc.GenerateAdminToken("admin")
	require.NoError(t, err)

	a, err := svc.ValidateAdminToken(first)
	require.NoError(t, err)
	b, err := svc.ValidateAdminToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.TokenID, b.TokenID)
}
