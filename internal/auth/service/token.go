package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/pkg/idx"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

// DefaultTokenQuota is the number of live tokens a user may hold.
const DefaultTokenQuota = 10000

// BeforeTokenCreationHook may amend claims before signing. Hooks run in
// registration order; the first error aborts issuance.
type BeforeTokenCreationHook func(ctx context.Context, ex Exchange, user domain.User, claims *jwtx.Claims) error

// TokenService issues and revokes access tokens.
type TokenService struct {
	Registry *TokenRegistry
	Keys     jwtx.KeySource
	Codec    *jwtx.Codec
	Auth     CredentialAuthenticator
	IDs      idx.Generator
	Shop     Shop
	Lifetime time.Duration
	Quota    int64
	Hooks    []BeforeTokenCreationHook
	Now      func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// CreateToken authenticates the credentials and issues a token for the
// resulting user. Empty credentials issue an anonymous token.
func (s *TokenService) CreateToken(ctx context.Context, ex Exchange, username, password string) (string, error) {
	user, err := s.Auth.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.CreateTokenForUser(ctx, ex, user)
}

// CreateTokenForUser signs a new token for user. Non-anonymous users first
// have their expired rows swept and their quota checked; the token is then
// registered. Nothing is persisted when issuance fails.
func (s *TokenService) CreateTokenForUser(ctx context.Context, ex Exchange, user domain.User) (string, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	if !user.Anonymous {
		if _, err := s.Registry.SweepExpired(ctx, user.ID, now); err != nil {
			return "", err
		}
		ok, err := s.Registry.CanIssue(ctx, user.ID, s.Quota)
		if err != nil {
			return "", err
		}
		if !ok {
			l.Warn("token quota exceeded", slog.String("user_id", user.ID), slog.Int64("quota", s.Quota))
			return "", ErrTokenQuotaExceeded
		}
	}

	claims := jwtx.NewShopClaims(jwtx.ClaimParams{
		Issuer:    s.Shop.URL,
		Audience:  s.Shop.URL,
		ShopID:    s.Shop.ID,
		TokenID:   s.IDs.NewID(),
		UserID:    user.ID,
		Username:  user.Username,
		Anonymous: user.Anonymous,
		IssuedAt:  now,
		Lifetime:  s.Lifetime,
	})

	for _, hook := range s.Hooks {
		if err := hook(ctx, ex, user, &claims); err != nil {
			return "", fmt.Errorf("before token creation: %w", err)
		}
	}

	key, err := s.Keys.SignatureKey(ctx)
	if err != nil {
		return "", err
	}
	signed, err := s.Codec.Build(claims, key)
	if err != nil {
		return "", err
	}

	if !user.Anonymous {
		err := s.Registry.Register(ctx, domain.TokenRecord{
			ID:        claims.TokenID,
			ShopID:    claims.ShopID,
			UserID:    user.ID,
			IssuedAt:  claims.IssuedAtTime(),
			ExpiresAt: claims.ExpiresAtTime(),
			UserAgent: ex.UserAgent,
			Token:     signed,
		})
		if err != nil {
			return "", err
		}
	}

	l.Info("token issued",
		slog.String("user_id", user.ID),
		slog.Bool("anonymous", user.Anonymous),
		slog.String("token_id", claims.TokenID),
	)
	return signed, nil
}

// DeleteToken revokes any registered token.
func (s *TokenService) DeleteToken(ctx context.Context, tokenID string) error {
	ok, err := s.Registry.IsRegistered(ctx, tokenID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownToken
	}
	_, err = s.Registry.Delete(ctx, store.TokenDeleteFilter{TokenID: &tokenID})
	return err
}

// DeleteUserToken revokes tokenID only if userID owns it.
func (s *TokenService) DeleteUserToken(ctx context.Context, userID, tokenID string) error {
	ok, err := s.Registry.UserOwnsToken(ctx, userID, tokenID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownToken
	}
	_, err = s.Registry.Delete(ctx, store.TokenDeleteFilter{UserID: &userID, TokenID: &tokenID})
	return err
}
