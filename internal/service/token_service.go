package service

import (
	"context"
	"time"

	"reviewin_backend/internal/config"
	"reviewin_backend/internal/model"
	"reviewin_backend/internal/util"
)

// TokenBlocklist is the revocation set behind logout. TTL equals the
// remaining token lifetime, so entries expire with the tokens they block.
type TokenBlocklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenService struct {
	Cfg       *config.Config
	Blocklist TokenBlocklist
}

func NewTokenService(cfg *config.Config, blocklist TokenBlocklist) *TokenService {
	return &TokenService{Cfg: cfg, Blocklist: blocklist}
}

func (s *TokenService) IssueAccessToken(user *model.User) (string, error) {
	return util.GenerateJWT(user, util.TokenTypeAccess, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpireTime)
}

func (s *TokenService) IssueRefreshToken(user *model.User) (string, error) {
	return util.GenerateJWT(user, util.TokenTypeRefresh, s.Cfg.JWT.Secret, s.Cfg.JWT.RefreshExpireTime)
}

// IssueTokenPair is used by register and login, which hand out both.
func (s *TokenService) IssueTokenPair(user *model.User) (access, refresh string, err error) {
	access, err = s.IssueAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.IssueRefreshToken(user)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Revoke blocks exactly the presented token until its natural expiry.
func (s *TokenService) Revoke(ctx context.Context, claims *util.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.Blocklist.Revoke(ctx, claims.ID, ttl)
}

// ParseRefreshToken validates a token presented to the refresh endpoint.
// Access tokens and revoked tokens are rejected.
func (s *TokenService) ParseRefreshToken(ctx context.Context, tokenString string) (*util.Claims, error) {
	claims, err := util.ParseJWT(tokenString, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, util.ErrInvalidToken
	}
	if claims.TokenType != util.TokenTypeRefresh {
		return nil, util.ErrWrongTokenType
	}

	revoked, err := s.Blocklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, util.ErrTokenRevoked
	}

	return claims, nil
}
