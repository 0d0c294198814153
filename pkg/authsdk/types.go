package authsdk

import "time"

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the JSON error body. Client code should use APIError.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is returned from POST /v1/token and POST /v1/refresh.
type TokenResponse struct {
	// Token is the HS512 signed access token
	Token string `json:"token"`
}

// LoginResponse is returned from POST /v1/login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenInfo is one registered access token. The signed token itself is
// never listed.
type TokenInfo struct {
	ID        string    `json:"id"`
	ShopID    int64     `json:"shop_id"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	UserAgent string    `json:"user_agent"`
}

// TokensResponse is returned from GET /v1/tokens.
type TokensResponse struct {
	Tokens []TokenInfo `json:"tokens"`
}

// TokensQuery narrows GET /v1/tokens. Zero values do not filter.
type TokensQuery struct {
	CustomerID string
	ShopID     int64

	ExpiresAtEquals      *time.Time
	ExpiresAtLessThan    *time.Time
	ExpiresAtGreaterThan *time.Time
	ExpiresAtBetween     *[2]time.Time

	Offset int64
	Limit  *int64
	// Sort is ASC (default) or DESC by expiry.
	Sort string
}

// ============================================================================
// Administration Types
// ============================================================================

// TokenDeletedResponse is returned from DELETE /v1/tokens/{id}.
type TokenDeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// TokensDeletedResponse is returned from the bulk delete endpoints.
type TokensDeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// RegenerateResponse is returned from POST /v1/signature-key/regenerate.
type RegenerateResponse struct {
	Regenerated bool `json:"regenerated"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// SignatureKey indicates whether a usable signing secret is configured
	SignatureKey string `json:"signature_key"`
}
