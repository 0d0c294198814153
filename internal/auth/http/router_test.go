package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/shopauth/pkg/authsdk"
	"github.com/aussiebroadwan/shopauth/pkg/cryptox"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-pepper")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type testServer struct {
	*httptest.Server
	svc *service.Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	svc := service.New(service.Options{
		Store:           st,
		Shop:            service.Shop{ID: 1, URL: "https://shop.example"},
		TokenLifetime:   time.Hour,
		RefreshLifetime: 24 * time.Hour,
	})
	_, err = svc.Keys.EnsureKey(context.Background())
	require.NoError(t, err)

	r := NewRouter(svc, st, httpx.CookieModeSameSite, "test", slogx.Discard())
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, svc: svc}
}

func (s *testServer) user(t *testing.T, username string, groups ...string) *authsdk.Session {
	t.Helper()
	ctx := context.Background()
	_, err := s.svc.Users.CreateUser(ctx, username, username+"-pass", groups...)
	require.NoError(t, err)

	session, err := authsdk.NewSDKClient(s.URL).LoginSession(ctx, username, username+"-pass")
	require.NoError(t, err)
	return session
}

func TestTokenEndpoint(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	client := authsdk.NewSDKClient(srv.URL)

	token, err := client.AnonymousToken(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = client.Token(ctx, "nobody", "pw")
	require.ErrorIs(t, err, authsdk.ErrInvalidLogin)

	resp, err := http.Post(srv.URL+"/v1/token", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTokenSetsFingerprintCookie(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/token", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	var fp *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == service.FingerprintCookie {
			fp = c
		}
	}
	require.NotNil(t, fp)
	require.True(t, fp.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, fp.SameSite)
}

func TestLoginAndRefresh(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	session := srv.user(t, "alice")

	before := session.AccessToken()
	require.NoError(t, session.Refresh(ctx))
	require.NotEqual(t, before, session.AccessToken())

	// A client without the fingerprint cookie cannot use the refresh token.
	stranger := authsdk.NewSDKClient(srv.URL)
	_, err := stranger.Refresh(ctx, session.RefreshToken(), "whatever")
	require.ErrorIs(t, err, authsdk.ErrFingerprintMissing)

	_, err = authsdk.NewSDKClient(srv.URL).Refresh(ctx, "", "")
	require.ErrorIs(t, err, authsdk.ErrInvalidRequest)
}

func TestAdministrationRoutes(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	alice := srv.user(t, "alice")
	bob := srv.user(t, "bob")
	root := srv.user(t, "root", domain.GroupAdmin)

	tokens, err := alice.ListTokens(ctx, authsdk.TokensQuery{})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, "shopauth-sdk", tokens[0].UserAgent)

	all, err := root.ListTokens(ctx, authsdk.TokensQuery{Sort: "desc"})
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = alice.ListTokens(ctx, authsdk.TokensQuery{Sort: "sideways"})
	require.ErrorIs(t, err, authsdk.ErrInvalidRequest)

	_, err = alice.DeleteShopTokens(ctx)
	require.ErrorIs(t, err, authsdk.ErrUnauthorized)

	bobTokens, err := bob.ListTokens(ctx, authsdk.TokensQuery{})
	require.NoError(t, err)
	_, err = alice.DeleteToken(ctx, bobTokens[0].ID)
	require.ErrorIs(t, err, authsdk.ErrUnknownToken)

	ok, err := root.DeleteToken(ctx, bobTokens[0].ID)
	require.NoError(t, err)
	require.True(t, ok)

	// bob's token is gone, so his session is rejected.
	_, err = bob.ListTokens(ctx, authsdk.TokensQuery{})
	require.ErrorIs(t, err, authsdk.ErrUnknownToken)

	_, err = root.DeleteCustomerTokens(ctx, "missing")
	require.ErrorIs(t, err, authsdk.ErrUserNotFound)

	n, err := alice.DeleteCustomerTokens(ctx, "")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	ok, err = root.RegenerateSignatureKey(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = root.ListTokens(ctx, authsdk.TokensQuery{})
	require.ErrorIs(t, err, authsdk.ErrInvalidToken)
}

func TestBearerHandling(t *testing.T) {
	srv := newTestServer(t)

	do := func(authz string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/tokens", nil)
		require.NoError(t, err)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := do("Bearer not-a-token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), `error="invalid_token"`)

	resp = do("Basic Zm9vOmJhcg==")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// No header is an anonymous caller, who may not list tokens.
	resp = do("")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	client := authsdk.NewSDKClient(srv.URL)

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.SignatureKey)
}

func TestParseListing(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, f domain.TokenFilter, p domain.Pagination, s domain.Sorting)
	}{
		{
			name:  "defaults",
			query: "",
			check: func(t *testing.T, f domain.TokenFilter, p domain.Pagination, s domain.Sorting) {
				require.Nil(t, f.CustomerID)
				require.Nil(t, f.ExpiresAt)
				require.Nil(t, p.Limit)
				require.Equal(t, domain.SortASC, s.ExpiresAt)
			},
		},
		{
			name:  "everything",
			query: "customer_id=c1&shop_id=2&expires_at_lt=2030-01-01T00:00:00Z&offset=3&limit=4&sort=desc",
			check: func(t *testing.T, f domain.TokenFilter, p domain.Pagination, s domain.Sorting) {
				require.Equal(t, "c1", *f.CustomerID)
				require.Equal(t, int64(2), *f.ShopID)
				require.Equal(t, 2030, f.ExpiresAt.LessThan.Year())
				require.Equal(t, int64(3), p.Offset)
				require.Equal(t, int64(4), *p.Limit)
				require.True(t, s.Descending())
			},
		},
		{
			name:  "between",
			query: "expires_at_from=2030-01-01T00:00:00Z&expires_at_to=2030-01-02T00:00:00Z",
			check: func(t *testing.T, f domain.TokenFilter, _ domain.Pagination, _ domain.Sorting) {
				require.NotNil(t, f.ExpiresAt.Between)
			},
		},
		{name: "half a range", query: "expires_at_from=2030-01-01T00:00:00Z", wantErr: true},
		{name: "bad time", query: "expires_at_eq=yesterday", wantErr: true},
		{name: "bad shop", query: "shop_id=x", wantErr: true},
		{name: "bad limit", query: "limit=many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/tokens?"+tt.query, nil)
			f, p, s, err := parseListing(r)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, f, p, s)
		})
	}
}
