package service

import "errors"

// Request errors.
var (
	ErrInvalidLogin       = errors.New("invalid_login")
	ErrTokenQuotaExceeded = errors.New("token_quota_exceeded")
	ErrFingerprintMissing = errors.New("fingerprint_missing")
	ErrFingerprintInvalid = errors.New("fingerprint_invalid")
	ErrInvalidRequest     = errors.New("invalid_request")
)

// Permission errors.
var (
	ErrInvalidToken        = errors.New("invalid_token")
	ErrUnknownToken        = errors.New("unknown_token")
	ErrTokenUserBlocked    = errors.New("token_user_blocked")
	ErrInvalidRefreshToken = errors.New("invalid_refresh_token")
	ErrUnauthorized        = errors.New("unauthorized")
)

var (
	ErrMalformedToken      = errors.New("malformed_token")
	ErrUserNotFound        = errors.New("user_not_found")
	ErrMissingSignatureKey = errors.New("missing_signature_key")
	ErrDuplicateTokenID    = errors.New("duplicate_token_id")
)

// Category groups errors by how a transport should report them.
type Category int

const (
	CategoryInternal Category = iota
	CategoryRequest
	CategoryPermission
	CategoryAuthentication
	CategoryNotFound
)

// CategoryOf classifies err. Anything not produced by this package is
// internal.
func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return CategoryInternal
	case errors.Is(err, ErrMalformedToken):
		return CategoryAuthentication
	case errors.Is(err, ErrInvalidLogin),
		errors.Is(err, ErrTokenQuotaExceeded),
		errors.Is(err, ErrFingerprintMissing),
		errors.Is(err, ErrFingerprintInvalid),
		errors.Is(err, ErrInvalidRequest):
		return CategoryRequest
	case errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrUnknownToken),
		errors.Is(err, ErrTokenUserBlocked),
		errors.Is(err, ErrInvalidRefreshToken),
		errors.Is(err, ErrUnauthorized):
		return CategoryPermission
	case errors.Is(err, ErrUserNotFound):
		return CategoryNotFound
	default:
		return CategoryInternal
	}
}
