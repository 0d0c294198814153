package authsdk

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
)

// ErrNoRefreshToken is returned when an expired session cannot renew itself.
var ErrNoRefreshToken = errors.New("access token expired and no refresh token available")

// refreshSkew renews the access token slightly before it expires.
const refreshSkew = 30 * time.Second

// Session represents an authenticated session with automatic token refresh.
// All Session methods automatically handle token expiration and refresh when needed.
type Session struct {
	client *SDKClient

	mu              sync.RWMutex
	accessToken     string
	refreshToken    string
	fingerprintHash string
	expiresAt       time.Time
}

// setAccessToken stores token and the claims the session needs from it. The
// token is only decoded; the server remains the authority on its validity.
func (s *Session) setAccessToken(token string) {
	s.accessToken = token
	s.fingerprintHash = ""
	s.expiresAt = time.Time{}

	if tok, err := jwtx.NewCodec().Parse(token); err == nil {
		s.fingerprintHash = tok.Claims.FingerprintHash
		s.expiresAt = tok.Claims.ExpiresAtTime().Add(-refreshSkew)
	}
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

// Refresh renews the access token now.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return ErrNoRefreshToken
	}

	token, err := s.client.Refresh(ctx, s.refreshToken, s.fingerprintHash)
	if err != nil {
		return err
	}
	s.setAccessToken(token)
	return nil
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the refresh token. It does not change on refresh.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}
