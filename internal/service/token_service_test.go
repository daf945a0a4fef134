package service

import (
	"testing"
	"time"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "prepaid-point-ledger")
	actorID := uuid.New()

	token, expiresAt, err := svc.Generate(domain.ActorTypeCustomer, actorID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, domain.ActorTypeCustomer, claims.ActorType)
	assert.Equal(t, actorID, claims.ActorID)
}

func TestJWTTokenService_Validate_WrongSecret(t *testing.T) {
	svc := NewJWTTokenService("secret-a", time.Hour, "prepaid-point-ledger")
	token, _, err := svc.Generate(domain.ActorTypeOwner, uuid.New())
	require.NoError(t, err)

	other := NewJWTTokenService("secret-b", time.Hour, "prepaid-point-ledger")
	claims, err := other.Validate(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Expired(t *testing.T) {
	svc := NewJWTTokenService("test-secret", -time.Minute, "prepaid-point-ledger")
	token, _, err := svc.Generate(domain.ActorTypeCustomer, uuid.New())
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Garbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "prepaid-point-ledger")
	claims, err := svc.Validate("not.a.jwt")
	assert.Nil(t, claims)
	assert.Error(t, err)
}
