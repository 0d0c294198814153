package httpx

import (
	"context"

	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyClaims   ctxKey = "claims"
	CtxKeyRawToken ctxKey = "raw_token"
)

// ContextWithAuth stores validated claims and the raw bearer token.
func ContextWithAuth(ctx context.Context, c jwtx.Claims, raw string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	ctx = context.WithValue(ctx, CtxKeyRawToken, raw)
	return ctx
}

// ClaimsFromContext returns the claims of the validated token, if any.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// UserIDFromContext returns the user id of the validated token or "".
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// RawTokenFromContext returns the bearer token as presented.
func RawTokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRawToken).(string); ok {
		return v
	}
	return ""
}
