package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims issued for a shop. The custom field
// names are part of the wire format shared with existing clients.
type Claims struct {
	jwt.RegisteredClaims

	ShopID        int64  `json:"shopid"`
	Username      string `json:"username"`
	UserID        string `json:"userid"`
	UserAnonymous bool   `json:"useranonymous"`
	TokenID       string `json:"tokenid"`

	// FingerprintHash is the SHA-256 of the raw fingerprint kept in the
	// browser's HTTP-only cookie. Empty when no fingerprint was bound.
	FingerprintHash string `json:"fingerprinthash,omitempty"`
}

// ClaimParams carries everything needed to mint a set of claims.
type ClaimParams struct {
	Issuer    string // shop URL
	Audience  string // shop URL
	ShopID    int64
	TokenID   string
	UserID    string
	Username  string
	Anonymous bool
	IssuedAt  time.Time
	Lifetime  time.Duration
}

// NewShopClaims builds claims with notBefore == issuedAt and
// expiresAt == issuedAt + lifetime. The token id doubles as jti.
func NewShopClaims(p ClaimParams) Claims {
	iat := p.IssuedAt.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.UserID,
			Audience:  jwt.ClaimStrings{p.Audience},
			IssuedAt:  jwt.NewNumericDate(iat),
			NotBefore: jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(p.Lifetime)),
			ID:        p.TokenID,
		},
		ShopID:        p.ShopID,
		Username:      p.Username,
		UserID:        p.UserID,
		UserAnonymous: p.Anonymous,
		TokenID:       p.TokenID,
	}
}

// IssuedAtTime returns iat or the zero time.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns exp or the zero time.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that expected is one of the token audiences.
func (c *Claims) ValidateAudience(expected string) error {
	if !slices.Contains(c.Audience, expected) {
		return ErrAudience
	}
	return nil
}

// ValidateTime ensures now lies within [nbf, exp]. A token without exp is
// treated as expired.
func (c *Claims) ValidateTime(now time.Time) error {
	if c.ExpiresAt == nil || now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateShop ensures the token was issued for shopID.
func (c *Claims) ValidateShop(shopID int64) error {
	if c.ShopID != shopID {
		return ErrShopMismatch
	}
	return nil
}
