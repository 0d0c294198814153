package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store/drivers/sqlite/gen"
)

type signatureKeysRepo struct {
	q *gen.Queries
}

func (r *signatureKeysRepo) CreateSignatureKey(ctx context.Context, key domain.SignatureKey) error {
	err := r.q.CreateSignatureKey(ctx, gen.CreateSignatureKeyParams{
		ID:              key.ID,
		SecretEncrypted: key.SecretEncrypted,
		CreatedAt:       key.CreatedAt.UTC(),
		RetiredAt:       mapOptionalTime(key.RetiredAt),
	})
	return mapConstraint(err)
}

func (r *signatureKeysRepo) GetActiveSignatureKey(ctx context.Context) (domain.SignatureKey, error) {
	row, err := r.q.GetActiveSignatureKey(ctx)
	if err != nil {
		return domain.SignatureKey{}, mapNotFound(err)
	}
	return mapSignatureKey(row), nil
}

func (r *signatureKeysRepo) RetireSignatureKeys(ctx context.Context, at time.Time) error {
	return r.q.RetireSignatureKeys(ctx, sql.NullTime{Time: at.UTC(), Valid: true})
}
