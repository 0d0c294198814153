package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/pkg/authsdk"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
)

// TokenHandler serves POST /v1/token.
type TokenHandler struct {
	Tokens     *service.TokenService
	CookieMode httpx.CookieMode
}

// ServeHTTP godoc
//
//	@Summary		Token Endpoint
//	@Description	Issues an HS512 access token for the given credentials. Empty credentials issue a token for a fresh anonymous user.
//	@Description	A random fingerprint is set in an HTTP-only cookie; its SHA-256 is embedded in the token as fingerprinthash.
//	@Tags			Tokens
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string					false	"Username"
//	@Param			password	formData	string					false	"Password"
//	@Success		200			{object}	authsdk.TokenResponse	"token"
//	@Failure		400			{object}	authsdk.ErrorResponse	"invalid_login, token_quota_exceeded"
//	@Failure		500			{object}	authsdk.ErrorResponse	"error, error_description"
//	@Header			200			{string}	Set-Cookie				"gql-fingerprint"
//	@Router			/v1/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	token, err := h.Tokens.CreateToken(
		r.Context(),
		exchange(w, r, h.CookieMode),
		strings.TrimSpace(r.Form.Get("username")),
		r.Form.Get("password"),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{Token: token})
}

// LoginHandler serves POST /v1/login.
type LoginHandler struct {
	Login      *service.LoginService
	CookieMode httpx.CookieMode
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticates once and returns an access token together with a long-lived opaque refresh token.
//	@Tags			Tokens
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string					false	"Username"
//	@Param			password	formData	string					false	"Password"
//	@Success		200			{object}	authsdk.LoginResponse	"access_token, refresh_token"
//	@Failure		400			{object}	authsdk.ErrorResponse	"invalid_login, token_quota_exceeded"
//	@Failure		500			{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	res, err := h.Login.Login(
		r.Context(),
		exchange(w, r, h.CookieMode),
		strings.TrimSpace(r.Form.Get("username")),
		r.Form.Get("password"),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// RefreshHandler serves POST /v1/refresh.
type RefreshHandler struct {
	Refresh    *service.RefreshTokenService
	CookieMode httpx.CookieMode
}

// ServeHTTP godoc
//
//	@Summary		Refresh Endpoint
//	@Description	Exchanges a refresh token for a new access token. The fingerprint cookie must match fingerprint_hash, the fingerprinthash claim of the last access token.
//	@Description	The refresh token stays valid until it expires.
//	@Tags			Tokens
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			refresh_token		formData	string					true	"Refresh token"
//	@Param			fingerprint_hash	formData	string					true	"fingerprinthash claim of the previous access token"
//	@Success		200					{object}	authsdk.TokenResponse	"token"
//	@Failure		400					{object}	authsdk.ErrorResponse	"fingerprint_missing, fingerprint_invalid"
//	@Failure		403					{object}	authsdk.ErrorResponse	"invalid_refresh_token"
//	@Failure		500					{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	refresh := strings.TrimSpace(r.Form.Get("refresh_token"))
	if refresh == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token, err := h.Refresh.RefreshToken(
		r.Context(),
		exchange(w, r, h.CookieMode),
		refresh,
		strings.TrimSpace(r.Form.Get("fingerprint_hash")),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{Token: token})
}
