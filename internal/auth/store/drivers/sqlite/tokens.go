package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/internal/auth/store/drivers/sqlite/gen"
)

type tokensRepo struct {
	q  *gen.Queries
	db gen.DBTX // filtered deletes and listings are built at runtime
}

func (r *tokensRepo) RegisterToken(ctx context.Context, rec domain.TokenRecord) error {
	err := r.q.RegisterToken(ctx, gen.RegisterTokenParams{
		ID:        rec.ID,
		ShopID:    rec.ShopID,
		UserID:    rec.UserID,
		IssuedAt:  rec.IssuedAt.UTC(),
		ExpiresAt: rec.ExpiresAt.UTC(),
		UserAgent: rec.UserAgent,
		Token:     rec.Token,
	})
	return mapConstraint(err)
}

func (r *tokensRepo) GetToken(ctx context.Context, id string) (domain.TokenRecord, error) {
	row, err := r.q.GetToken(ctx, id)
	if err != nil {
		return domain.TokenRecord{}, mapNotFound(err)
	}
	return mapToken(row), nil
}

func (r *tokensRepo) IsRegistered(ctx context.Context, id string) (bool, error) {
	n, err := r.q.CountTokensByID(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *tokensRepo) DeleteExpiredUserTokens(ctx context.Context, userID string, now time.Time) (int64, error) {
	return r.q.DeleteExpiredUserTokens(ctx, gen.DeleteExpiredUserTokensParams{
		UserID:    userID,
		ExpiresAt: now.UTC(),
	})
}

func (r *tokensRepo) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredTokens(ctx, now.UTC())
}

func (r *tokensRepo) CountUserTokens(ctx context.Context, userID string) (int64, error) {
	return r.q.CountUserTokens(ctx, userID)
}

func (r *tokensRepo) UserOwnsToken(ctx context.Context, userID, tokenID string) (bool, error) {
	n, err := r.q.CountUserToken(ctx, gen.CountUserTokenParams{UserID: userID, ID: tokenID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *tokensRepo) DeleteTokens(ctx context.Context, f store.TokenDeleteFilter) (int64, error) {
	var w where
	if f.UserID != nil {
		w.add("user_id = ?", *f.UserID)
	}
	if f.TokenID != nil {
		w.add("id = ?", *f.TokenID)
	}
	if f.ShopID != nil {
		w.add("shop_id = ?", *f.ShopID)
	}

	res, err := r.db.ExecContext(ctx, "DELETE FROM tokens"+w.String(), w.args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *tokensRepo) ListTokens(
	ctx context.Context,
	f domain.TokenFilter,
	p domain.Pagination,
	s domain.Sorting,
) ([]domain.TokenRecord, error) {
	var w where
	if f.CustomerID != nil {
		w.add("user_id = ?", *f.CustomerID)
	}
	if f.ShopID != nil {
		w.add("shop_id = ?", *f.ShopID)
	}
	if d := f.ExpiresAt; d != nil {
		if d.Equals != nil {
			w.add("expires_at = ?", d.Equals.UTC())
		}
		if d.LessThan != nil {
			w.add("expires_at < ?", d.LessThan.UTC())
		}
		if d.GreaterThan != nil {
			w.add("expires_at > ?", d.GreaterThan.UTC())
		}
		if d.Between != nil {
			w.add("expires_at BETWEEN ? AND ?", d.Between[0].UTC(), d.Between[1].UTC())
		}
	}

	order := "ASC"
	if s.Descending() {
		order = "DESC"
	}

	// SQLite needs a LIMIT before OFFSET; -1 means no limit.
	limit := int64(-1)
	if p.Limit != nil {
		limit = *p.Limit
	}

	query := `SELECT id, shop_id, user_id, issued_at, expires_at, user_agent, token FROM tokens` +
		w.String() +
		` ORDER BY expires_at ` + order + `, id ` + order +
		` LIMIT ? OFFSET ?`
	args := append(w.args, limit, p.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TokenRecord
	for rows.Next() {
		var row gen.Token
		if err := rows.Scan(
			&row.ID,
			&row.ShopID,
			&row.UserID,
			&row.IssuedAt,
			&row.ExpiresAt,
			&row.UserAgent,
			&row.Token,
		); err != nil {
			return nil, err
		}
		out = append(out, mapToken(row))
	}
	return out, rows.Err()
}

// where accumulates ANDed predicates and their arguments.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
