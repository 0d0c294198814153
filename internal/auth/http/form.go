package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/pkg/authsdk"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
)

// parseForm checks the content type and parses the urlencoded body. It
// writes the error response itself and reports whether to continue.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		authsdk.ErrInvalidContentType.WriteError(w)
		return false
	}
	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return false
	}
	return true
}

// exchange binds the service's request state to this HTTP exchange.
func exchange(w http.ResponseWriter, r *http.Request, mode httpx.CookieMode) service.Exchange {
	return service.Exchange{
		UserAgent: r.UserAgent(),
		Cookies:   httpx.NewRequestCookies(w, r, mode),
	}
}
