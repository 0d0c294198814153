package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
)

// RefreshTokenService hands out refresh tokens and exchanges them for new
// access tokens.
type RefreshTokenService struct {
	Repo        *RefreshTokenRepository
	Tokens      *TokenService
	Fingerprint FingerprintBinder
	Shop        Shop
	Lifetime    time.Duration
}

// CreateRefreshTokenForUser sweeps expired refresh tokens and stores a new
// one for user.
func (s *RefreshTokenService) CreateRefreshTokenForUser(ctx context.Context, user domain.User) (string, error) {
	if _, err := s.Repo.SweepExpired(ctx); err != nil {
		return "", err
	}
	t, err := s.Repo.Create(ctx, user.ID, s.Shop.ID, s.Lifetime)
	if err != nil {
		return "", err
	}
	return t.Token, nil
}

// RefreshToken issues a new access token for the owner of refreshToken.
// The fingerprint is checked before the refresh token is looked up. The
// refresh token itself stays valid until it expires.
func (s *RefreshTokenService) RefreshToken(ctx context.Context, ex Exchange, refreshToken, fingerprintHash string) (string, error) {
	if err := s.Fingerprint.Validate(ex.Cookies, fingerprintHash); err != nil {
		return "", err
	}

	user, err := s.Repo.ResolveToUser(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	return s.Tokens.CreateTokenForUser(ctx, ex, user)
}
