package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "splitledger-test")
	userID := uuid.New()

	token, expiry, err := svc.Generate(userID, "ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestJWTTokenService_ExpiredToken(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", -time.Minute, "splitledger-test")

	token, _, err := svc.Generate(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	issuer := NewJWTTokenService("secret-a", time.Hour, "splitledger-test")
	verifier := NewJWTTokenService("secret-b", time.Hour, "splitledger-test")

	token, _, err := issuer.Generate(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_GarbageToken(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "splitledger-test")

	_, err := svc.Validate("not.a.jwt")
	assert.Error(t, err)
}
