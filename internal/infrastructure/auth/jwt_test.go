package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukabook/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests-only",
		TokenExpiration: expiration,
		Issuer:          "dukabook-test",
	})
}

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := newTestService(time.Hour)
	tenantID := uuid.New()
	userID := uuid.New()

	token, expiresAt, err := svc.Generate(TokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Name:     "Wambui",
		Role:     "cashier",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)

	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "Wambui", claims.Name)
	assert.Equal(t, "cashier", claims.Role)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, _, err := svc.Generate(TokenInput{TenantID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewTokenService(config.JWTConfig{
		Secret:          "a-completely-different-secret-value",
		TokenExpiration: time.Hour,
		Issuer:          "dukabook-test",
	})

	token, _, err := svc.Generate(TokenInput{TenantID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
