package domain

import "time"

// SignatureKey is the HS512 secret shared by signer and validator. Only the
// newest row is used; older rows are kept retired for audit.
type SignatureKey struct {
	ID              string // ULID
	SecretEncrypted []byte // AES-256-GCM sealed secret
	CreatedAt       time.Time
	RetiredAt       *time.Time
}

// IsActive reports whether the key has not been retired.
func (k *SignatureKey) IsActive() bool {
	return k.RetiredAt == nil
}
