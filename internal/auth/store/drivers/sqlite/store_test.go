package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/shopauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func ptr[T any](v T) *T { return &v }

func seedToken(t *testing.T, s store.Store, id, userID string, shopID int64, expires time.Time) {
	t.Helper()
	require.NoError(t, s.Tokens().RegisterToken(context.Background(), domain.TokenRecord{
		ID:        id,
		ShopID:    shopID,
		UserID:    userID,
		IssuedAt:  expires.Add(-time.Hour),
		ExpiresAt: expires,
		UserAgent: "test-agent",
		Token:     "raw-" + id,
	}))
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestTokensRegistry(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("register and get", func(t *testing.T) {
		s := newTestStore(t)
		seedToken(t, s, "tok-1", "user-1", 1, now.Add(time.Hour))

		rec, err := s.Tokens().GetToken(ctx, "tok-1")
		require.NoError(t, err)
		require.Equal(t, "user-1", rec.UserID)
		require.Equal(t, int64(1), rec.ShopID)
		require.Equal(t, "test-agent", rec.UserAgent)
		require.Equal(t, "raw-tok-1", rec.Token)
		require.True(t, rec.ExpiresAt.Equal(now.Add(time.Hour)))

		ok, err := s.Tokens().IsRegistered(ctx, "tok-1")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = s.Tokens().IsRegistered(ctx, "nope")
		require.NoError(t, err)
		require.False(t, ok)

		_, err = s.Tokens().GetToken(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		s := newTestStore(t)
		seedToken(t, s, "tok-1", "user-1", 1, now.Add(time.Hour))

		err := s.Tokens().RegisterToken(ctx, domain.TokenRecord{
			ID: "tok-1", ShopID: 1, UserID: "user-2", IssuedAt: now, ExpiresAt: now, Token: "x",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("sweep expired for user", func(t *testing.T) {
		s := newTestStore(t)
		seedToken(t, s, "old", "user-1", 1, now.Add(-time.Minute))
		seedToken(t, s, "edge", "user-1", 1, now)
		seedToken(t, s, "live", "user-1", 1, now.Add(time.Minute))
		seedToken(t, s, "other", "user-2", 1, now.Add(-time.Minute))

		n, err := s.Tokens().DeleteExpiredUserTokens(ctx, "user-1", now)
		require.NoError(t, err)
		require.Equal(t, int64(2), n)

		n, err = s.Tokens().DeleteExpiredUserTokens(ctx, "user-1", now)
		require.NoError(t, err)
		require.Zero(t, n)

		count, err := s.Tokens().CountUserTokens(ctx, "user-1")
		require.NoError(t, err)
		require.Equal(t, int64(1), count)

		count, err = s.Tokens().CountUserTokens(ctx, "user-2")
		require.NoError(t, err)
		require.Equal(t, int64(1), count)

		n, err = s.Tokens().DeleteExpiredTokens(ctx, now)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	})

	t.Run("ownership", func(t *testing.T) {
		s := newTestStore(t)
		seedToken(t, s, "tok-1", "user-1", 1, now.Add(time.Hour))

		ok, err := s.Tokens().UserOwnsToken(ctx, "user-1", "tok-1")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = s.Tokens().UserOwnsToken(ctx, "user-2", "tok-1")
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestDeleteTokens(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().UTC().Add(time.Hour)

	tests := []struct {
		name   string
		filter store.TokenDeleteFilter
		want   int64
	}{
		{"by token id", store.TokenDeleteFilter{TokenID: ptr("a1")}, 1},
		{"by user", store.TokenDeleteFilter{UserID: ptr("user-a")}, 2},
		{"by shop", store.TokenDeleteFilter{ShopID: ptr(int64(2))}, 1},
		{"user and token must both match", store.TokenDeleteFilter{UserID: ptr("user-b"), TokenID: ptr("a1")}, 0},
		{"unknown id", store.TokenDeleteFilter{TokenID: ptr("missing")}, 0},
		{"empty filter deletes all", store.TokenDeleteFilter{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			seedToken(t, s, "a1", "user-a", 1, exp)
			seedToken(t, s, "a2", "user-a", 1, exp)
			seedToken(t, s, "b1", "user-b", 2, exp)

			n, err := s.Tokens().DeleteTokens(ctx, tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, n)

			n, err = s.Tokens().DeleteTokens(ctx, tt.filter)
			require.NoError(t, err)
			require.Zero(t, n)
		})
	}
}

func TestListTokens(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	s := newTestStore(t)
	seedToken(t, s, "t1", "user-a", 1, base.Add(1*time.Hour))
	seedToken(t, s, "t2", "user-a", 1, base.Add(3*time.Hour))
	seedToken(t, s, "t3", "user-b", 2, base.Add(2*time.Hour))

	ids := func(recs []domain.TokenRecord) []string {
		out := make([]string, len(recs))
		for i, r := range recs {
			out[i] = r.ID
		}
		return out
	}

	tests := []struct {
		name string
		f    domain.TokenFilter
		p    domain.Pagination
		s    domain.Sorting
		want []string
	}{
		{"all ascending", domain.TokenFilter{}, domain.Pagination{}, domain.DefaultSorting(), []string{"t1", "t3", "t2"}},
		{"all descending", domain.TokenFilter{}, domain.Pagination{}, domain.Sorting{ExpiresAt: domain.SortDESC}, []string{"t2", "t3", "t1"}},
		{"by customer", domain.TokenFilter{CustomerID: ptr("user-a")}, domain.Pagination{}, domain.DefaultSorting(), []string{"t1", "t2"}},
		{"by shop", domain.TokenFilter{ShopID: ptr(int64(2))}, domain.Pagination{}, domain.DefaultSorting(), []string{"t3"}},
		{"offset and limit", domain.TokenFilter{}, domain.Pagination{Offset: 1, Limit: ptr(int64(1))}, domain.DefaultSorting(), []string{"t3"}},
		{"offset only", domain.TokenFilter{}, domain.Pagination{Offset: 2}, domain.DefaultSorting(), []string{"t2"}},
		{"zero limit", domain.TokenFilter{}, domain.Pagination{Limit: ptr(int64(0))}, domain.DefaultSorting(), []string{}},
		{
			"expires equals",
			domain.TokenFilter{ExpiresAt: &domain.DateFilter{Equals: ptr(base.Add(2 * time.Hour))}},
			domain.Pagination{}, domain.DefaultSorting(), []string{"t3"},
		},
		{
			"expires less than",
			domain.TokenFilter{ExpiresAt: &domain.DateFilter{LessThan: ptr(base.Add(2 * time.Hour))}},
			domain.Pagination{}, domain.DefaultSorting(), []string{"t1"},
		},
		{
			"expires greater than",
			domain.TokenFilter{ExpiresAt: &domain.DateFilter{GreaterThan: ptr(base.Add(2 * time.Hour))}},
			domain.Pagination{}, domain.DefaultSorting(), []string{"t2"},
		},
		{
			"expires between inclusive",
			domain.TokenFilter{ExpiresAt: &domain.DateFilter{Between: &[2]time.Time{base.Add(time.Hour), base.Add(2 * time.Hour)}}},
			domain.Pagination{}, domain.DefaultSorting(), []string{"t1", "t3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := s.Tokens().ListTokens(ctx, tt.f, tt.p, tt.s)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(recs))
		})
	}
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	s := newTestStore(t)

	live := domain.RefreshToken{
		ID: idx.New().String(), UserID: "user-1", ShopID: 1, Token: "live-token",
		IssuedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	dead := domain.RefreshToken{
		ID: idx.New().String(), UserID: "user-1", ShopID: 1, Token: "dead-token",
		IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, live))
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, dead))

	dup := live
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.RefreshTokens().CreateRefreshToken(ctx, dup), store.ErrAlreadyExists)

	got, err := s.RefreshTokens().GetRefreshToken(ctx, "live-token")
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)
	require.True(t, got.ExpiresAt.Equal(live.ExpiresAt))

	n, err := s.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = s.RefreshTokens().GetRefreshToken(ctx, "dead-token")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err = s.RefreshTokens().DeleteUserRefreshTokens(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = s.RefreshTokens().DeleteUserRefreshTokens(ctx, "user-1")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSignatureKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	s := newTestStore(t)

	_, err := s.SignatureKeys().GetActiveSignatureKey(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	first := domain.SignatureKey{ID: idx.New().String(), SecretEncrypted: []byte("one"), CreatedAt: now}
	require.NoError(t, s.SignatureKeys().CreateSignatureKey(ctx, first))

	got, err := s.SignatureKeys().GetActiveSignatureKey(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.True(t, got.IsActive())

	err = s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.SignatureKeys().RetireSignatureKeys(ctx, now.Add(time.Second)); err != nil {
			return err
		}
		return tx.SignatureKeys().CreateSignatureKey(ctx, domain.SignatureKey{
			ID: idx.New().String(), SecretEncrypted: []byte("two"), CreatedAt: now.Add(time.Second),
		})
	})
	require.NoError(t, err)

	got, err = s.SignatureKeys().GetActiveSignatureKey(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("two"), got.SecretEncrypted)
}

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tokens().RegisterToken(ctx, domain.TokenRecord{
			ID: "rolled-back", ShopID: 1, UserID: "u", IssuedAt: time.Now(), ExpiresAt: time.Now(), Token: "x",
		}); err != nil {
			return err
		}
		_, err := tx.Tx(ctx)
		require.Error(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	ok, err := s.Tokens().IsRegistered(ctx, "rolled-back")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := domain.User{ID: idx.New().String(), Username: "alice", PasswordHash: "hash"}
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.ErrorIs(t, s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "alice"}), store.ErrAlreadyExists)

	got, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.False(t, got.CreatedAt.IsZero())

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.ErrorIs(t, s.Users().UpdatePasswordHash(ctx, "missing", "x"), store.ErrNotFound)

	require.NoError(t, s.Users().AddUserGroup(ctx, u.ID, domain.GroupBlocked))
	require.NoError(t, s.Users().AddUserGroup(ctx, u.ID, domain.GroupAdmin))
	require.NoError(t, s.Users().AddUserGroup(ctx, u.ID, domain.GroupAdmin))

	groups, err := s.Users().ListUserGroups(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{domain.GroupAdmin, domain.GroupBlocked}, groups)

	require.NoError(t, s.Users().RemoveUserGroup(ctx, u.ID, domain.GroupBlocked))
	groups, err = s.Users().ListUserGroups(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{domain.GroupAdmin}, groups)
}
