package token_adapter

import (
	"context"
	"discovery-service/internal/core/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)
	ctx := context.Background()

	want := domain.Claims{UserID: uuid.New(), Email: "anna@example.de", Role: "user"}
	token, err := svc.GenerateToken(ctx, want, time.Hour)
	require.NoError(t, err)

	got, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestTokenService_Rejects(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)
	other, err := NewTokenService("another-secret")
	require.NoError(t, err)
	ctx := context.Background()
	claims := domain.Claims{UserID: uuid.New()}

	expired, err := svc.GenerateToken(ctx, claims, -time.Minute)
	require.NoError(t, err)
	foreign, err := other.GenerateToken(ctx, claims, time.Hour)
	require.NoError(t, err)
	noUser, err := svc.GenerateToken(ctx, domain.Claims{}, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": claims.UserID.String(), "iss": issuer})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := map[string]string{
		"expired":      expired,
		"foreign key":  foreign,
		"nil user":     noUser,
		"alg none":     unsigned,
		"garbage":      "not.a.token",
		"empty string": "",
	}
	for name, token := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, token)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}

func TestNewTokenService_EmptyKey(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}
