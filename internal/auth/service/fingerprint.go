package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/pkg/cryptox"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
)

// FingerprintCookie is the cookie holding the raw fingerprint.
const FingerprintCookie = "gql-fingerprint"

var errNoCookieStore = errors.New("service: fingerprint binding needs a cookie store")

// FingerprintBinder ties tokens to a browser-held secret: the raw value
// lives in an HTTP-only cookie, its hash travels in the token.
type FingerprintBinder struct {
	CookieName string
}

func (b FingerprintBinder) cookieName() string {
	if b.CookieName == "" {
		return FingerprintCookie
	}
	return b.CookieName
}

// Generate returns a fresh random fingerprint (43 base64url chars).
func (b FingerprintBinder) Generate() (string, error) {
	return cryptox.GenerateToken(cryptox.TokenSize256)
}

// Hash is the value embedded in the token claim.
func (b FingerprintBinder) Hash(raw string) string {
	return cryptox.FingerprintToken(raw)
}

// Validate compares presentedHash with the hash of the cookie value.
func (b FingerprintBinder) Validate(cookies CookieStore, presentedHash string) error {
	if cookies == nil {
		return ErrFingerprintMissing
	}
	raw, ok := cookies.Cookie(b.cookieName())
	if !ok {
		return ErrFingerprintMissing
	}
	if !cryptox.EqualStrings(b.Hash(raw), presentedHash) {
		return ErrFingerprintInvalid
	}
	return nil
}

// Bind stores raw in the fingerprint cookie.
func (b FingerprintBinder) Bind(cookies CookieStore, raw string) {
	cookies.SetCookie(b.cookieName(), raw)
}

// BeforeTokenCreation is the hook that binds a fresh fingerprint to every
// issued token.
func (b FingerprintBinder) BeforeTokenCreation(_ context.Context, ex Exchange, _ domain.User, claims *jwtx.Claims) error {
	if ex.Cookies == nil {
		return errNoCookieStore
	}
	raw, err := b.Generate()
	if err != nil {
		return err
	}
	claims.FingerprintHash = b.Hash(raw)
	b.Bind(ex.Cookies, raw)
	return nil
}
