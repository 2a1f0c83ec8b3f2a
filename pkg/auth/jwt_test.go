package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *jwtService {
	return NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "hospital-api",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}).(*jwtService)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	sub := Subject{UserID: uuid.New(), Email: "doc@example.com", UserType: "doctor"}

	token, err := svc.GenerateAccessToken(sub)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, sub.UserID, claims.UserID)
	assert.Equal(t, "doctor", claims.UserType)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	svc := newTestService()
	sub := Subject{UserID: uuid.New(), Email: "p@example.com", UserType: "patient"}

	refresh, err := svc.GenerateRefreshToken(sub)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestExpiredToken(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.GenerateAccessToken(Subject{UserID: uuid.New()})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedToken(t *testing.T) {
	svc := newTestService()
	token, err := svc.GenerateAccessToken(Subject{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemoryRevocationStore(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "abc", time.Minute))
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)
}
