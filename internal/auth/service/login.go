package service

import (
	"context"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
)

// LoginService authenticates once and returns an access and refresh token
// pair for the same user.
type LoginService struct {
	Auth    CredentialAuthenticator
	Tokens  *TokenService
	Refresh *RefreshTokenService
}

func (s *LoginService) Login(ctx context.Context, ex Exchange, username, password string) (domain.LoginResult, error) {
	user, err := s.Auth.Login(ctx, username, password)
	if err != nil {
		return domain.LoginResult{}, err
	}

	// The access token carries the quota check, so it goes first and a
	// rejected login persists nothing.
	access, err := s.Tokens.CreateTokenForUser(ctx, ex, user)
	if err != nil {
		return domain.LoginResult{}, err
	}

	refresh, err := s.Refresh.CreateRefreshTokenForUser(ctx, user)
	if err != nil {
		return domain.LoginResult{}, err
	}

	return domain.LoginResult{AccessToken: access, RefreshToken: refresh}, nil
}
