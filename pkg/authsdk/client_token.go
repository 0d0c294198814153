package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Token exchanges credentials for an access token. Empty credentials yield
// an anonymous token.
func (c *SDKClient) Token(ctx context.Context, username, password string) (string, error) {
	data := url.Values{
		"username": {username},
		"password": {password},
	}

	var tokenResp TokenResponse
	if err := c.postForm(ctx, "/v1/token", data, &tokenResp); err != nil {
		return "", err
	}
	return tokenResp.Token, nil
}

// AnonymousToken requests a token for a fresh anonymous user.
func (c *SDKClient) AnonymousToken(ctx context.Context) (string, error) {
	return c.Token(ctx, "", "")
}

// Login returns an access and refresh token pair.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	data := url.Values{
		"username": {username},
		"password": {password},
	}

	var loginResp LoginResponse
	if err := c.postForm(ctx, "/v1/login", data, &loginResp); err != nil {
		return nil, err
	}
	return &loginResp, nil
}

// Refresh exchanges a refresh token for a new access token. fingerprintHash
// is the fingerprinthash claim of the last access token; the matching cookie
// must be in the client's jar.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken, fingerprintHash string) (string, error) {
	data := url.Values{
		"refresh_token":    {refreshToken},
		"fingerprint_hash": {fingerprintHash},
	}

	var tokenResp TokenResponse
	if err := c.postForm(ctx, "/v1/refresh", data, &tokenResp); err != nil {
		return "", err
	}
	return tokenResp.Token, nil
}

func (c *SDKClient) postForm(ctx context.Context, path string, data url.Values, target any) error {
	resp, err := c.doRequest(ctx, http.MethodPost, path, formBody(data), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}
