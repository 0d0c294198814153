package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestIsAllowed(t *testing.T) {
	e := newEnv(t)
	e.createUser(t, "alice")
	e.createUser(t, "root", domain.GroupAdmin)

	alice := e.as(t, e.login(t, "alice"))
	root := e.as(t, e.login(t, "root"))

	rights := []domain.Right{
		domain.RightViewAnyToken,
		domain.RightInvalidateAnyToken,
		domain.RightRegenerateSignatureKey,
	}
	for _, r := range rights {
		ok, err := e.svc.Authz.IsAllowed(root, r)
		require.NoError(t, err)
		require.True(t, ok, r)

		ok, err = e.svc.Authz.IsAllowed(alice, r)
		require.NoError(t, err)
		require.False(t, ok, r)

		ok, err = e.svc.Authz.IsAllowed(context.Background(), r)
		require.NoError(t, err)
		require.False(t, ok, r)
	}
}

func TestPermissionProviders(t *testing.T) {
	support := service.PermissionProviderFunc(func() domain.PermissionTable {
		return domain.PermissionTable{"support": {domain.RightViewAnyToken}}
	})
	e := newEnv(t, func(o *service.Options) {
		o.PermissionProviders = []service.PermissionProvider{support}
	})
	e.createUser(t, "sam", "support")
	ctx := e.as(t, e.login(t, "sam"))

	ok, err := e.svc.Authz.IsAllowed(ctx, domain.RightViewAnyToken)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = e.svc.Authz.IsAllowed(ctx, domain.RightInvalidateAnyToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBeforeAuthorizationHooks(t *testing.T) {
	yes, no := true, false
	var seen []*jwtx.Claims

	e := newEnv(t, func(o *service.Options) {
		o.AuthorizationHooks = []service.BeforeAuthorizationHook{
			func(_ context.Context, c *jwtx.Claims, _ domain.Right) *bool {
				seen = append(seen, c)
				return nil
			},
			func(_ context.Context, c *jwtx.Claims, r domain.Right) *bool {
				switch {
				case r == domain.RightRegenerateSignatureKey:
					return &no
				case c != nil && c.Username == "alice" && r == domain.RightViewAnyToken:
					return &yes
				}
				return nil
			},
		}
	})
	e.createUser(t, "alice")
	e.createUser(t, "root", domain.GroupAdmin)
	alice := e.as(t, e.login(t, "alice"))
	root := e.as(t, e.login(t, "root"))

	ok, err := e.svc.Authz.IsAllowed(alice, domain.RightViewAnyToken)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = e.svc.Authz.IsAllowed(root, domain.RightRegenerateSignatureKey)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = e.svc.Authz.IsAllowed(root, domain.RightInvalidateAnyToken)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = e.svc.Authz.IsAllowed(context.Background(), domain.RightViewAnyToken)
	require.NoError(t, err)
	require.False(t, ok)

	require.Len(t, seen, 4)
	require.Nil(t, seen[3])
	require.Equal(t, "alice", seen[0].Username)
}

func TestAuthentication(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.createUser(t, "alice")

	require.False(t, e.svc.Authn.IsLogged(ctx))
	u, err := e.svc.Authn.User(ctx)
	require.NoError(t, err)
	require.True(t, u.Anonymous)

	anonRaw, err := e.svc.Tokens.CreateToken(ctx, e.ex, "", "")
	require.NoError(t, err)
	anonCtx := e.as(t, anonRaw)
	require.False(t, e.svc.Authn.IsLogged(anonCtx))
	u, err = e.svc.Authn.User(anonCtx)
	require.NoError(t, err)
	require.True(t, u.Anonymous)
	require.Equal(t, e.parse(t, anonRaw).UserID, u.ID)

	aliceCtx := e.as(t, e.login(t, "alice"))
	require.True(t, e.svc.Authn.IsLogged(aliceCtx))
	u, err = e.svc.Authn.User(aliceCtx)
	require.NoError(t, err)
	require.Equal(t, alice.ID, u.ID)
	require.Equal(t, "alice", u.Username)
}
