package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/pkg/cryptox"
	"github.com/aussiebroadwan/shopauth/pkg/idx"
)

// RefreshTokenRepository stores opaque refresh tokens and resolves them to
// users.
type RefreshTokenRepository struct {
	Store store.Store
	Users UserDirectory
	Now   func() time.Time
}

func (r *RefreshTokenRepository) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Create persists a new token for the user that expires after ttl.
func (r *RefreshTokenRepository) Create(ctx context.Context, userID string, shopID int64, ttl time.Duration) (domain.RefreshToken, error) {
	raw, err := cryptox.GenerateOpaqueToken(domain.RefreshTokenLength)
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("generate refresh token: %w", err)
	}

	now := r.now().UTC().Truncate(time.Second)
	t := domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		ShopID:    shopID,
		Token:     raw,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	if err := r.Store.RefreshTokens().CreateRefreshToken(ctx, t); err != nil {
		return domain.RefreshToken{}, fmt.Errorf("store refresh token: %w", err)
	}
	return t, nil
}

// SweepExpired deletes every expired refresh token.
func (r *RefreshTokenRepository) SweepExpired(ctx context.Context) (int64, error) {
	n, err := r.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, r.now())
	if err != nil {
		return 0, fmt.Errorf("sweep refresh tokens: %w", err)
	}
	return n, nil
}

// ResolveToUser returns the owner of token. Unknown and expired tokens are
// both ErrInvalidRefreshToken. An owner missing from the directory comes
// back as an anonymous user with the stored id.
func (r *RefreshTokenRepository) ResolveToUser(ctx context.Context, token string) (domain.User, error) {
	t, err := r.Store.RefreshTokens().GetRefreshToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup refresh token: %w", err)
	}
	if t.IsExpired(r.now()) {
		return domain.User{}, ErrInvalidRefreshToken
	}

	user, err := r.Users.UserByID(ctx, t.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return domain.AnonymousUser(t.UserID), nil
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// InvalidateAllForUser deletes every refresh token of the user.
func (r *RefreshTokenRepository) InvalidateAllForUser(ctx context.Context, userID string) (int64, error) {
	n, err := r.Store.RefreshTokens().DeleteUserRefreshTokens(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("invalidate refresh tokens: %w", err)
	}
	return n, nil
}
