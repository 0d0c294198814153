package authsdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient is a client for the shop authentication service. It keeps a
// cookie jar so the fingerprint cookie set on token issuance is sent back on
// refresh, the way a browser would.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// UserAgent is recorded by the server on every issued token.
	UserAgent string
}

// NewSDKClient creates a new auth service client with its own cookie jar.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil)
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		UserAgent: "shopauth-sdk",
	}
}

// LoginSession logs in and returns a session holding both tokens.
func (c *SDKClient) LoginSession(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(resp.AccessToken, resp.RefreshToken), nil
}

// NewSession wraps tokens obtained elsewhere. refreshToken may be empty, in
// which case the session cannot renew itself.
func (c *SDKClient) NewSession(accessToken, refreshToken string) *Session {
	s := &Session{client: c, refreshToken: refreshToken}
	s.setAccessToken(accessToken)
	return s
}
