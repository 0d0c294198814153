package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/pkg/cryptox"
	"github.com/aussiebroadwan/shopauth/pkg/idx"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

// SignatureKeySize is the number of random bytes in a generated key. The
// secret is their hex encoding, 128 characters.
const SignatureKeySize = 64

// SignatureKeyService keeps the HS512 secret in the signature_keys table,
// encrypted with the master key. Every call reads the active row so a
// regeneration is visible to all requests immediately.
type SignatureKeyService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *SignatureKeyService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// SignatureKey returns the active secret. A missing or short key is
// ErrMissingSignatureKey.
func (s *SignatureKeyService) SignatureKey(ctx context.Context) ([]byte, error) {
	key, err := s.Store.SignatureKeys().GetActiveSignatureKey(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMissingSignatureKey
	}
	if err != nil {
		return nil, fmt.Errorf("load signature key: %w", err)
	}

	secret, err := cryptox.DecryptSecret(key.SecretEncrypted)
	if err != nil {
		return nil, fmt.Errorf("decrypt signature key %s: %w", key.ID, err)
	}
	if err := jwtx.CheckKey(secret); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingSignatureKey, err)
	}
	return secret, nil
}

// Regenerate replaces the active secret with a fresh one. Tokens signed with
// the previous secret no longer verify.
func (s *SignatureKeyService) Regenerate(ctx context.Context) error {
	secret, err := cryptox.GenerateHexKey(SignatureKeySize)
	if err != nil {
		return fmt.Errorf("generate signature key: %w", err)
	}

	sealed, err := cryptox.EncryptSecret([]byte(secret))
	if err != nil {
		return fmt.Errorf("encrypt signature key: %w", err)
	}

	now := s.now()
	key := domain.SignatureKey{
		ID:              idx.NewAt(now).String(),
		SecretEncrypted: sealed,
		CreatedAt:       now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.SignatureKeys().RetireSignatureKeys(ctx, now); err != nil {
			return fmt.Errorf("retire signature keys: %w", err)
		}
		if err := tx.SignatureKeys().CreateSignatureKey(ctx, key); err != nil {
			return fmt.Errorf("store signature key: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("signature key regenerated", slog.String("key_id", key.ID))
	return nil
}

// EnsureKey generates the first secret when none exists yet. It reports
// whether a key was created.
func (s *SignatureKeyService) EnsureKey(ctx context.Context) (bool, error) {
	_, err := s.SignatureKey(ctx)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrMissingSignatureKey):
		return true, s.Regenerate(ctx)
	default:
		return false, err
	}
}
