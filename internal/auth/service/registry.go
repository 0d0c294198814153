package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
)

// TokenRegistry records issued, non-anonymous access tokens.
type TokenRegistry struct {
	Store store.Store
}

// Register stores rec. A reused id yields ErrDuplicateTokenID.
func (r *TokenRegistry) Register(ctx context.Context, rec domain.TokenRecord) error {
	err := r.Store.Tokens().RegisterToken(ctx, rec)
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrDuplicateTokenID
	}
	if err != nil {
		return fmt.Errorf("register token: %w", err)
	}
	return nil
}

func (r *TokenRegistry) IsRegistered(ctx context.Context, tokenID string) (bool, error) {
	ok, err := r.Store.Tokens().IsRegistered(ctx, tokenID)
	if err != nil {
		return false, fmt.Errorf("lookup token: %w", err)
	}
	return ok, nil
}

// Lookup returns the registered row for tokenID. The bool is false when no
// row exists.
func (r *TokenRegistry) Lookup(ctx context.Context, tokenID string) (domain.TokenRecord, bool, error) {
	rec, err := r.Store.Tokens().GetToken(ctx, tokenID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.TokenRecord{}, false, nil
	}
	if err != nil {
		return domain.TokenRecord{}, false, fmt.Errorf("lookup token: %w", err)
	}
	return rec, true, nil
}

// SweepExpired deletes the user's rows with expires_at <= now.
func (r *TokenRegistry) SweepExpired(ctx context.Context, userID string, now time.Time) (int64, error) {
	n, err := r.Store.Tokens().DeleteExpiredUserTokens(ctx, userID, now)
	if err != nil {
		return 0, fmt.Errorf("sweep expired tokens: %w", err)
	}
	return n, nil
}

func (r *TokenRegistry) CountForUser(ctx context.Context, userID string) (int64, error) {
	n, err := r.Store.Tokens().CountUserTokens(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return n, nil
}

// CanIssue reports whether the user holds fewer than quota tokens.
func (r *TokenRegistry) CanIssue(ctx context.Context, userID string, quota int64) (bool, error) {
	n, err := r.CountForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return n < quota, nil
}

// Delete removes the rows matching f and returns how many went.
func (r *TokenRegistry) Delete(ctx context.Context, f store.TokenDeleteFilter) (int64, error) {
	n, err := r.Store.Tokens().DeleteTokens(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}
	return n, nil
}

func (r *TokenRegistry) UserOwnsToken(ctx context.Context, userID, tokenID string) (bool, error) {
	ok, err := r.Store.Tokens().UserOwnsToken(ctx, userID, tokenID)
	if err != nil {
		return false, fmt.Errorf("lookup token owner: %w", err)
	}
	return ok, nil
}

func (r *TokenRegistry) List(
	ctx context.Context,
	f domain.TokenFilter,
	p domain.Pagination,
	s domain.Sorting,
) ([]domain.TokenRecord, error) {
	recs, err := r.Store.Tokens().ListTokens(ctx, f, p, s)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	return recs, nil
}
