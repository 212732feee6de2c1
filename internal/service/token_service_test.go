package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewin_backend/internal/config"
	"reviewin_backend/internal/model"
	"reviewin_backend/internal/util"
)

func newTokenService() *TokenService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:            "token-service-test-secret-value!",
			AccessExpireTime:  time.Hour,
			RefreshExpireTime: 2 * time.Hour,
		},
	}
	return NewTokenService(cfg, NewMemoryBlocklist())
}

func tokenTestUser() *model.User {
	return &model.User{
		BaseModel: model.BaseModel{ID: 7},
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      model.RoleStudent,
	}
}

func TestIssueTokenPair(t *testing.T) {
	svc := newTokenService()

	access, refresh, err := svc.IssueTokenPair(tokenTestUser())
	require.NoError(t, err)

	accessClaims, err := util.ParseJWT(access, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, util.TokenTypeAccess, accessClaims.TokenType)
	assert.Equal(t, uint(7), accessClaims.UserID)

	refreshClaims, err := util.ParseJWT(refresh, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, util.TokenTypeRefresh, refreshClaims.TokenType)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTokenService()
	ctx := context.Background()

	access, err := svc.IssueAccessToken(tokenTestUser())
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(ctx, access)
	assert.ErrorIs(t, err, util.ErrWrongTokenType)

	_, err = svc.ParseRefreshToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}

func TestRevokedRefreshTokenRejected(t *testing.T) {
	svc := newTokenService()
	ctx := context.Background()

	refresh, err := svc.IssueRefreshToken(tokenTestUser())
	require.NoError(t, err)

	claims, err := svc.ParseRefreshToken(ctx, refresh)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, claims))

	_, err = svc.ParseRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, util.ErrTokenRevoked)
}

func TestMemoryBlocklist(t *testing.T) {
	bl := NewMemoryBlocklist()
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Entries past their TTL no longer block.
	require.NoError(t, bl.Revoke(ctx, "jti-2", -time.Second))
	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
