package httpx

import (
	"net/http"
)

// RequireUser rejects requests that did not present a validated,
// non-anonymous token. onDeny renders the rejection; nil means a bare 401
// challenge.
func RequireUser(onDeny func(http.ResponseWriter, *http.Request)) Middleware {
	if onDeny == nil {
		onDeny = func(w http.ResponseWriter, _ *http.Request) {
			WriteBearerError(w, "authentication required")
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.UserAnonymous {
				onDeny(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
