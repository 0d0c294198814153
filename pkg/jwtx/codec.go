package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Algorithm is the only signing algorithm accepted by the codec.
const Algorithm = "HS512"

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrAlgMismatch  = errors.New("jwtx: algorithm mismatch")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrShopMismatch = errors.New("jwtx: shop mismatch")
	ErrEmptyKey     = errors.New("jwtx: empty signing key")
	ErrConstraint   = errors.New("jwtx: constraints not met")
)

// Token is a parsed, not yet verified, compact JWS.
type Token struct {
	Raw    string
	Alg    string
	Claims Claims
}

// Constraints are checked against a parsed token by Verify.
type Constraints struct {
	Issuer   string
	Audience string
	ShopID   int64
}

// Codec builds and parses HS512 tokens.
type Codec struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewCodec returns a codec using the wall clock.
func NewCodec() *Codec {
	return &Codec{Now: time.Now}
}

func (c *Codec) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now().UTC()
}

// Build signs claims with key using HMAC-SHA-512.
func (c *Codec) Build(claims Claims, key []byte) (string, error) {
	if len(key) == 0 {
		return "", ErrEmptyKey
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Parse decodes header and claims without checking the signature. Anything
// that is not a three-segment JWS with a JSON claim set is ErrMalformed.
func (c *Codec) Parse(raw string) (*Token, error) {
	if raw == "" {
		return nil, ErrMalformed
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrMalformed
	}

	alg, _ := parsed.Header["alg"].(string)
	return &Token{Raw: raw, Alg: alg, Claims: *claims}, nil
}

// Verify checks the signature against key (HS512 only), issuer, audience,
// time validity and shop scope. The returned error names the first failing
// constraint and always wraps ErrConstraint.
func (c *Codec) Verify(tok *Token, key []byte, cons Constraints) error {
	if tok == nil {
		return fmt.Errorf("%w: %w", ErrConstraint, ErrMalformed)
	}
	if err := c.verify(tok, key, cons); err != nil {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return nil
}

func (c *Codec) verify(tok *Token, key []byte, cons Constraints) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if tok.Alg != Algorithm {
		return ErrAlgMismatch
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(tok.Raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAlgMismatch
		}
		return key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return ErrInvalidSig
		}
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	}

	claims := &tok.Claims
	if err := claims.ValidateIssuer(cons.Issuer); err != nil {
		return err
	}
	if err := claims.ValidateAudience(cons.Audience); err != nil {
		return err
	}
	if err := claims.ValidateTime(c.now()); err != nil {
		return err
	}
	return claims.ValidateShop(cons.ShopID)
}

// ValidateConstraints is Verify reduced to a yes/no answer.
func (c *Codec) ValidateConstraints(tok *Token, key []byte, cons Constraints) bool {
	return c.Verify(tok, key, cons) == nil
}
