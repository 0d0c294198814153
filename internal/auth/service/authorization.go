package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
)

// BeforeAuthorizationHook can decide a right outright. A nil result defers
// to the permission table. claims is nil for requests without a token.
type BeforeAuthorizationHook func(ctx context.Context, claims *jwtx.Claims, right domain.Right) *bool

// PermissionProvider contributes group rights.
type PermissionProvider interface {
	Permissions() domain.PermissionTable
}

// PermissionProviderFunc adapts a function to PermissionProvider.
type PermissionProviderFunc func() domain.PermissionTable

func (f PermissionProviderFunc) Permissions() domain.PermissionTable { return f() }

// DefaultPermissions grants the admin group every token administration right.
var DefaultPermissions = PermissionProviderFunc(func() domain.PermissionTable {
	return domain.PermissionTable{
		domain.GroupAdmin: {
			domain.RightViewAnyToken,
			domain.RightInvalidateAnyToken,
			domain.RightRegenerateSignatureKey,
		},
	}
})

// AuthorizationService answers whether the caller holds a right.
type AuthorizationService struct {
	groups      GroupMembershipProvider
	hooks       []BeforeAuthorizationHook
	permissions domain.PermissionTable
}

// NewAuthorizationService merges the providers' tables once.
func NewAuthorizationService(
	groups GroupMembershipProvider,
	hooks []BeforeAuthorizationHook,
	providers ...PermissionProvider,
) *AuthorizationService {
	table := domain.PermissionTable{}
	for _, p := range providers {
		table.Merge(p.Permissions())
	}
	return &AuthorizationService{groups: groups, hooks: hooks, permissions: table}
}

// IsAllowed consults the hooks first, then the groups of the user named by
// the validated token in ctx.
func (s *AuthorizationService) IsAllowed(ctx context.Context, right domain.Right) (bool, error) {
	var claims *jwtx.Claims
	if c, ok := httpx.ClaimsFromContext(ctx); ok {
		claims = &c
	}

	for _, hook := range s.hooks {
		if decision := hook(ctx, claims, right); decision != nil {
			return *decision, nil
		}
	}

	if claims == nil {
		return false, nil
	}

	groups, err := s.groups.UserGroupIDs(ctx, claims.UserID)
	if err != nil {
		return false, fmt.Errorf("load user groups: %w", err)
	}
	for _, g := range groups {
		if slices.Contains(s.permissions[g], right) {
			return true, nil
		}
	}
	return false, nil
}
