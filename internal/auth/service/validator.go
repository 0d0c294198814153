package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

// TokenValidator decides whether a presented access token is acceptable.
// The checks run in a fixed order and stop at the first failure:
// cryptographic constraints, registration and registry expiry for
// non-anonymous tokens, blocked group.
// Nothing touches the database until the signature and time window hold.
type TokenValidator struct {
	Codec    *jwtx.Codec
	Keys     jwtx.KeySource
	Registry *TokenRegistry
	Groups   GroupMembershipProvider
	Shop     Shop
	Now      func() time.Time
}

func (v *TokenValidator) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

// Validate runs the pipeline on a parsed token.
func (v *TokenValidator) Validate(ctx context.Context, tok *jwtx.Token) error {
	l := slogx.FromContext(ctx)

	key, err := v.Keys.SignatureKey(ctx)
	if err != nil {
		return err
	}
	if err := v.Codec.Verify(tok, key, v.Shop.constraints()); err != nil {
		l.Warn("token constraints failed", slog.Any("reason", err))
		return ErrInvalidToken
	}

	claims := tok.Claims

	// Anonymous tokens are never registered.
	if !claims.UserAnonymous {
		rec, ok, err := v.Registry.Lookup(ctx, claims.TokenID)
		if err != nil {
			return err
		}
		if !ok {
			l.Warn("token not registered", slog.String("token_id", claims.TokenID))
			return ErrUnknownToken
		}
		if rec.IsExpired(v.now()) {
			return ErrInvalidToken
		}
	}

	groups, err := v.Groups.UserGroupIDs(ctx, claims.UserID)
	if err != nil {
		return fmt.Errorf("load user groups: %w", err)
	}
	if slices.Contains(groups, domain.GroupBlocked) {
		l.Warn("token user blocked", slog.String("user_id", claims.UserID))
		return ErrTokenUserBlocked
	}
	return nil
}

// Authenticate parses and validates a raw bearer token.
func (v *TokenValidator) Authenticate(ctx context.Context, raw string) (jwtx.Claims, error) {
	tok, err := v.Codec.Parse(raw)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if err := v.Validate(ctx, tok); err != nil {
		return jwtx.Claims{}, err
	}
	return tok.Claims, nil
}
