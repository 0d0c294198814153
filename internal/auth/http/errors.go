package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/pkg/authsdk"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"
)

// sentinelErrors pairs service errors with their wire form. Checked in
// order with errors.Is.
var sentinelErrors = []struct {
	err error
	api *authsdk.APIError
}{
	{service.ErrInvalidLogin, authsdk.ErrInvalidLogin},
	{service.ErrTokenQuotaExceeded, authsdk.ErrTokenQuotaExceeded},
	{service.ErrFingerprintMissing, authsdk.ErrFingerprintMissing},
	{service.ErrFingerprintInvalid, authsdk.ErrFingerprintInvalid},
	{service.ErrInvalidToken, authsdk.ErrInvalidToken},
	{service.ErrUnknownToken, authsdk.ErrUnknownToken},
	{service.ErrTokenUserBlocked, authsdk.ErrTokenUserBlocked},
	{service.ErrInvalidRefreshToken, authsdk.ErrInvalidRefreshToken},
	{service.ErrUnauthorized, authsdk.ErrUnauthorized},
	{service.ErrMalformedToken, authsdk.ErrMalformedToken},
	{service.ErrUserNotFound, authsdk.ErrUserNotFound},
}

// writeServiceError renders err by category. Request errors keep the
// service's message as description since it names the offending argument.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch service.CategoryOf(err) {
	case service.CategoryInternal:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	case service.CategoryAuthentication:
		httpx.SetBearerChallenge(w, "malformed token")
	}

	if errors.Is(err, service.ErrInvalidRequest) {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	}

	for _, s := range sentinelErrors {
		if errors.Is(err, s.err) {
			s.api.WriteError(w)
			return
		}
	}
	authsdk.ErrServerError.WriteError(w)
}

// denyAnonymous refuses administration requests without a logged-in user.
func denyAnonymous(w http.ResponseWriter, _ *http.Request) {
	authsdk.ErrUnauthorized.WriteError(w)
}
