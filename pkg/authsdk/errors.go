package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/shopauth/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	// Request errors (400)
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidLogin       = "invalid_login"
	ErrorCodeTokenQuotaExceeded = "token_quota_exceeded"
	ErrorCodeFingerprintMissing = "fingerprint_missing"
	ErrorCodeFingerprintInvalid = "fingerprint_invalid"

	// Permission errors (403)
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeUnknownToken        = "unknown_token"
	ErrorCodeTokenUserBlocked    = "token_user_blocked"
	ErrorCodeInvalidRefreshToken = "invalid_refresh_token"
	ErrorCodeUnauthorized        = "unauthorized"

	// Authentication errors (401)
	ErrorCodeMalformedToken = "malformed_token"

	// Not found (404)
	ErrorCodeUserNotFound = "user_not_found"

	ErrorCodeServerError = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error body every endpoint returns. It is written by the
// server and decoded by the client.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is a stable snake_case identifier (e.g. "invalid_login")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on the code so client code can use errors.Is with the
// predefined values.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// NewAPIError creates an APIError.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidContentType = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "content-type must be application/x-www-form-urlencoded",
	}

	ErrInvalidFormBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid form body",
	}

	ErrInvalidLogin = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidLogin,
		Description: "invalid username or password",
	}

	ErrTokenQuotaExceeded = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeTokenQuotaExceeded,
		Description: "too many active tokens for this user",
	}

	ErrFingerprintMissing = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeFingerprintMissing,
		Description: "fingerprint cookie is missing",
	}

	ErrFingerprintInvalid = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeFingerprintInvalid,
		Description: "fingerprint does not match",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is invalid or expired",
	}

	ErrUnknownToken = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeUnknownToken,
		Description: "the token is not registered",
	}

	ErrTokenUserBlocked = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeTokenUserBlocked,
		Description: "the token owner is blocked",
	}

	ErrInvalidRefreshToken = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInvalidRefreshToken,
		Description: "the refresh token is invalid or expired",
	}

	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeUnauthorized,
		Description: "not allowed to perform this operation",
	}

	ErrMalformedToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMalformedToken,
		Description: "the bearer token could not be parsed",
	}

	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "user not found",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// A bare 401 from the bearer middleware carries no body.
	if resp.StatusCode == http.StatusUnauthorized {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeMalformedToken,
			Description: resp.Header.Get("WWW-Authenticate"),
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
