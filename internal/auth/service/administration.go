package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

// TokenAdministration implements the token management operations. Callers
// must be logged in; rights widen what they may touch beyond their own
// tokens.
type TokenAdministration struct {
	Issuer   *TokenService
	Registry *TokenRegistry
	Authz    *AuthorizationService
	Authn    *Authentication
	Users    UserDirectory
	Keys     SignatureKeyStore
	Shop     Shop
}

func (a *TokenAdministration) caller(ctx context.Context) (domain.User, error) {
	if !a.Authn.IsLogged(ctx) {
		return domain.User{}, ErrUnauthorized
	}
	return a.Authn.User(ctx)
}

// Tokens lists registry rows. Without VIEW_ANY_TOKEN the listing is limited
// to the caller's own tokens and a filter on another customer is refused.
func (a *TokenAdministration) Tokens(
	ctx context.Context,
	f domain.TokenFilter,
	p domain.Pagination,
	s domain.Sorting,
) ([]domain.TokenRecord, error) {
	if err := validateListing(f, p, s); err != nil {
		return nil, err
	}

	user, err := a.caller(ctx)
	if err != nil {
		return nil, err
	}

	viewAny, err := a.Authz.IsAllowed(ctx, domain.RightViewAnyToken)
	if err != nil {
		return nil, err
	}
	if !viewAny {
		if f.CustomerID != nil && *f.CustomerID != user.ID {
			return nil, ErrUnauthorized
		}
		f.CustomerID = &user.ID
	}

	return a.Registry.List(ctx, f, p, s)
}

func validateListing(f domain.TokenFilter, p domain.Pagination, s domain.Sorting) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: filter: %v", ErrInvalidRequest, err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: pagination: %v", ErrInvalidRequest, err)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: sort: %v", ErrInvalidRequest, err)
	}
	return nil
}

// TokenDelete revokes one token. With INVALIDATE_ANY_TOKEN any token may be
// revoked, otherwise only the caller's own.
func (a *TokenAdministration) TokenDelete(ctx context.Context, tokenID string) (bool, error) {
	user, err := a.caller(ctx)
	if err != nil {
		return false, err
	}

	invalidateAny, err := a.Authz.IsAllowed(ctx, domain.RightInvalidateAnyToken)
	if err != nil {
		return false, err
	}
	if invalidateAny {
		err = a.Issuer.DeleteToken(ctx, tokenID)
	} else {
		err = a.Issuer.DeleteUserToken(ctx, user.ID, tokenID)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CustomerTokensDelete revokes every token of a customer, the caller when
// customerID is nil.
func (a *TokenAdministration) CustomerTokensDelete(ctx context.Context, customerID *string) (int64, error) {
	user, err := a.caller(ctx)
	if err != nil {
		return 0, err
	}

	target := user.ID
	if customerID != nil && *customerID != "" {
		target = *customerID
	}

	if target != user.ID {
		if err := a.require(ctx, domain.RightInvalidateAnyToken); err != nil {
			return 0, err
		}
	}

	if _, err := a.Users.UserByID(ctx, target); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrUserNotFound, target)
		}
		return 0, err
	}

	n, err := a.Registry.Delete(ctx, store.TokenDeleteFilter{UserID: &target})
	if err != nil {
		return 0, err
	}
	slogx.FromContext(ctx).Info("customer tokens deleted",
		slog.String("customer_id", target),
		slog.Int64("count", n),
	)
	return n, nil
}

// ShopTokensDelete revokes every token of the current shop.
func (a *TokenAdministration) ShopTokensDelete(ctx context.Context) (int64, error) {
	if err := a.require(ctx, domain.RightInvalidateAnyToken); err != nil {
		return 0, err
	}

	shopID := a.Shop.ID
	n, err := a.Registry.Delete(ctx, store.TokenDeleteFilter{ShopID: &shopID})
	if err != nil {
		return 0, err
	}
	slogx.FromContext(ctx).Info("shop tokens deleted", slog.Int64("shop_id", shopID), slog.Int64("count", n))
	return n, nil
}

// RegenerateSignatureKey replaces the signing secret, invalidating every
// token issued so far.
func (a *TokenAdministration) RegenerateSignatureKey(ctx context.Context) (bool, error) {
	if err := a.require(ctx, domain.RightRegenerateSignatureKey); err != nil {
		return false, err
	}
	if err := a.Keys.Regenerate(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (a *TokenAdministration) require(ctx context.Context, right domain.Right) error {
	ok, err := a.Authz.IsAllowed(ctx, right)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}
