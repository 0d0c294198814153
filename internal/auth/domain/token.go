package domain

import "time"

// TokenRecord is a registry row for an issued, non-anonymous access token.
// Rows are inserted on issuance and deleted on revocation or expiry sweep;
// they are never updated.
type TokenRecord struct {
	ID        string // equals the token id claim
	ShopID    int64
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	UserAgent string
	Token     string // signed token as issued
}

// IsExpired reports whether the record is expired at now (expires_at <= now).
func (r TokenRecord) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// RefreshTokenLength is the fixed length of opaque refresh tokens.
const RefreshTokenLength = 255

// RefreshToken models a stored refresh token.
type RefreshToken struct {
	ID        string // ULID
	UserID    string
	ShopID    int64
	Token     string // opaque, RefreshTokenLength chars
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the refresh token is expired at now.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// LoginResult is what a login returns.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
