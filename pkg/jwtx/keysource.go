package jwtx

import (
	"context"
	"errors"
)

// MinKeyLength is the shortest signing secret the codec will be used with.
const MinKeyLength = 64

// ErrKeyTooShort reports a configured signing secret below MinKeyLength.
var ErrKeyTooShort = errors.New("jwtx: signature key is too short")

// KeySource yields the current signing secret. Implementations must return
// the latest key on every call so a regeneration takes effect immediately.
type KeySource interface {
	SignatureKey(ctx context.Context) ([]byte, error)
}

// CheckKey enforces MinKeyLength.
func CheckKey(key []byte) error {
	if len(key) < MinKeyLength {
		return ErrKeyTooShort
	}
	return nil
}

// StaticKey is a fixed KeySource, mostly for tests and tooling.
type StaticKey []byte

func (k StaticKey) SignatureKey(context.Context) ([]byte, error) {
	if err := CheckKey(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}
