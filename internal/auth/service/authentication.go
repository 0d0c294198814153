package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
)

// Authentication exposes the caller behind the validated token in ctx.
type Authentication struct {
	Users UserDirectory
}

// IsLogged reports whether ctx carries a non-anonymous token.
func (a *Authentication) IsLogged(ctx context.Context) bool {
	claims, ok := httpx.ClaimsFromContext(ctx)
	return ok && !claims.UserAnonymous
}

// User returns the caller. Requests without a token, anonymous tokens and
// users unknown to the directory all come back anonymous.
func (a *Authentication) User(ctx context.Context) (domain.User, error) {
	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		return domain.AnonymousUser(""), nil
	}
	if claims.UserAnonymous {
		return domain.AnonymousUser(claims.UserID), nil
	}

	user, err := a.Users.UserByID(ctx, claims.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return domain.AnonymousUser(claims.UserID), nil
	}
	return user, err
}
