package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

// TokenAuthenticator validates a raw bearer token and returns its claims.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, raw string) (jwtx.Claims, error)
}

// ErrorWriter renders an authentication failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// AuthnMiddleware validates the bearer token when one is presented. Requests
// without an Authorization header pass through unauthenticated; handlers
// treat them as anonymous. A header that is not a bearer credential gets a
// 401 challenge, and validation errors are handed to onError.
func AuthnMiddleware(a TokenAuthenticator, onError ErrorWriter) Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, _ error) {
			WriteBearerError(w, "token verification failed")
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if authz == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(authz, "Bearer ") {
				WriteBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := a.Authenticate(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("bearer token rejected", "err", err)
				onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithAuth(ctx, claims, raw)))
		})
	}
}

// SetBearerChallenge sets an RFC 6750 invalid_token challenge header.
func SetBearerChallenge(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
}

// WriteBearerError writes a bare 401 with the challenge header.
func WriteBearerError(w http.ResponseWriter, desc string) {
	SetBearerChallenge(w, desc)
	w.WriteHeader(http.StatusUnauthorized)
}
