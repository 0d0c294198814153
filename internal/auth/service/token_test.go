package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestCreateTokenClaims(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, "alice")

	raw := e.login(t, "alice")
	claims := e.parse(t, raw)

	now := e.clock.Now()
	require.Equal(t, testShopURL, claims.Issuer)
	require.Equal(t, []string{testShopURL}, []string(claims.Audience))
	require.Equal(t, testShopID, claims.ShopID)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.False(t, claims.UserAnonymous)
	require.NotEmpty(t, claims.TokenID)
	require.True(t, claims.IssuedAtTime().Equal(now))
	require.True(t, claims.NotBefore.Time.Equal(now))
	require.True(t, claims.ExpiresAtTime().Equal(now.Add(time.Hour)))

	require.Equal(t, e.svc.Fingerprint.Hash(e.jar[service.FingerprintCookie]), claims.FingerprintHash)

	rec, err := e.svc.Registry.Store.Tokens().GetToken(context.Background(), claims.TokenID)
	require.NoError(t, err)
	require.Equal(t, user.ID, rec.UserID)
	require.Equal(t, testShopID, rec.ShopID)
	require.Equal(t, "test-agent", rec.UserAgent)
	require.Equal(t, raw, rec.Token)
}

func TestCreateTokenInvalidLogin(t *testing.T) {
	e := newEnv(t)
	e.createUser(t, "alice")

	tests := []struct {
		name, username, password string
	}{
		{"wrong password", "alice", "nope"},
		{"unknown user", "bob", "bob-pass"},
		{"password only", "", "alice-pass"},
		{"username only", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.Tokens.CreateToken(context.Background(), e.ex, tt.username, tt.password)
			require.ErrorIs(t, err, service.ErrInvalidLogin)
		})
	}
}

func TestAnonymousToken(t *testing.T) {
	e := newEnv(t, func(o *service.Options) { o.Quota = 1 })
	ctx := context.Background()

	var ids []string
	for range 3 {
		raw, err := e.svc.Tokens.CreateToken(ctx, e.ex, "", "")
		require.NoError(t, err)

		claims := e.parse(t, raw)
		require.True(t, claims.UserAnonymous)
		require.NotEmpty(t, claims.UserID)
		ids = append(ids, claims.TokenID)

		ok, err := e.svc.Registry.IsRegistered(ctx, claims.TokenID)
		require.NoError(t, err)
		require.False(t, ok)

		_, err = e.svc.Validator.Authenticate(ctx, raw)
		require.NoError(t, err)
	}
	require.NotEqual(t, ids[0], ids[1])

	recs, err := e.svc.Registry.List(ctx, domain.TokenFilter{}, domain.Pagination{}, domain.DefaultSorting())
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestTokenQuota(t *testing.T) {
	const quota = 3
	e := newEnv(t, func(o *service.Options) { o.Quota = quota })
	ctx := context.Background()
	user := e.createUser(t, "alice")

	for range quota {
		_, err := e.svc.Tokens.CreateTokenForUser(ctx, e.ex, user)
		require.NoError(t, err)
	}

	_, err := e.svc.Tokens.CreateTokenForUser(ctx, e.ex, user)
	require.ErrorIs(t, err, service.ErrTokenQuotaExceeded)

	n, err := e.svc.Registry.CountForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(quota), n)

	// Other users are unaffected.
	bob := e.createUser(t, "bob")
	_, err = e.svc.Tokens.CreateTokenForUser(ctx, e.ex, bob)
	require.NoError(t, err)

	// Once the tokens expire the next issuance sweeps them.
	e.clock.Advance(time.Hour)
	_, err = e.svc.Tokens.CreateTokenForUser(ctx, e.ex, user)
	require.NoError(t, err)

	n, err = e.svc.Registry.CountForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestLazySweepOnIssuance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.createUser(t, "alice")

	old := e.parse(t, e.login(t, "alice"))
	e.clock.Advance(2 * time.Hour)

	ok, err := e.svc.Registry.IsRegistered(ctx, old.TokenID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = e.svc.Tokens.CreateTokenForUser(ctx, e.ex, user)
	require.NoError(t, err)

	ok, err = e.svc.Registry.IsRegistered(ctx, old.TokenID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFreshFingerprintPerIssuance(t *testing.T) {
	e := newEnv(t)
	e.createUser(t, "alice")

	first := e.parse(t, e.login(t, "alice"))
	firstCookie := e.jar[service.FingerprintCookie]
	second := e.parse(t, e.login(t, "alice"))

	require.NotEqual(t, first.FingerprintHash, second.FingerprintHash)
	require.NotEqual(t, firstCookie, e.jar[service.FingerprintCookie])
	require.NotEqual(t, first.TokenID, second.TokenID)
}

func TestBeforeTokenCreationHooks(t *testing.T) {
	var order []string
	hook := func(name string) service.BeforeTokenCreationHook {
		return func(_ context.Context, _ service.Exchange, _ domain.User, c *jwtx.Claims) error {
			require.NotEmpty(t, c.FingerprintHash, "fingerprint hook runs first")
			order = append(order, name)
			return nil
		}
	}

	e := newEnv(t, func(o *service.Options) {
		o.TokenHooks = []service.BeforeTokenCreationHook{hook("a"), hook("b")}
	})
	user := e.createUser(t, "alice")

	_, err := e.svc.Tokens.CreateTokenForUser(context.Background(), e.ex, user)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, order)

	t.Run("failing hook persists nothing", func(t *testing.T) {
		boom := errors.New("boom")
		e := newEnv(t, func(o *service.Options) {
			o.TokenHooks = []service.BeforeTokenCreationHook{
				func(context.Context, service.Exchange, domain.User, *jwtx.Claims) error { return boom },
			}
		})
		user := e.createUser(t, "alice")

		_, err := e.svc.Tokens.CreateTokenForUser(context.Background(), e.ex, user)
		require.ErrorIs(t, err, boom)

		n, err := e.svc.Registry.CountForUser(context.Background(), user.ID)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestFixedTokenIDCollision(t *testing.T) {
	e := newEnv(t, func(o *service.Options) {
		o.IDs = fixedID("same-id")
	})
	ctx := context.Background()
	user := e.createUser(t, "alice")

	_, err := e.svc.Tokens.CreateTokenForUser(ctx, e.ex, user)
	require.NoError(t, err)

	_, err = e.svc.Tokens.CreateTokenForUser(ctx, e.ex, user)
	require.ErrorIs(t, err, service.ErrDuplicateTokenID)
}

type fixedID string

func (f fixedID) NewID() string { return string(f) }

func TestDeleteToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.createUser(t, "alice")

	claims := e.parse(t, e.login(t, "alice"))

	require.NoError(t, e.svc.Tokens.DeleteToken(ctx, claims.TokenID))
	require.ErrorIs(t, e.svc.Tokens.DeleteToken(ctx, claims.TokenID), service.ErrUnknownToken)
	require.ErrorIs(t, e.svc.Tokens.DeleteToken(ctx, "never-issued"), service.ErrUnknownToken)
}

func TestDeleteUserToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	claims := e.parse(t, e.login(t, "alice"))

	require.ErrorIs(t, e.svc.Tokens.DeleteUserToken(ctx, bob.ID, claims.TokenID), service.ErrUnknownToken)

	ok, err := e.svc.Registry.IsRegistered(ctx, claims.TokenID)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, e.svc.Tokens.DeleteUserToken(ctx, alice.ID, claims.TokenID))
	require.ErrorIs(t, e.svc.Tokens.DeleteUserToken(ctx, alice.ID, claims.TokenID), service.ErrUnknownToken)
}
