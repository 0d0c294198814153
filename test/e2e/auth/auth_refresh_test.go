package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/shopauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRefresh tests the complete flow:
// 1. Login with the seeded admin
// 2. Refresh the access token
// 3. Verify the fingerprint is rebound and the refresh token is kept
func TestLoginRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	session := adminSession(t, baseURL)
	oldAccessToken := session.AccessToken()
	oldRefreshToken := session.RefreshToken()

	require.NoError(t, session.Refresh(t.Context()))

	require.NotEqual(t, oldAccessToken, session.AccessToken(), "Access token should be reissued")
	require.Equal(t, oldRefreshToken, session.RefreshToken(), "Refresh token should be reusable")

	before, after := decode(t, oldAccessToken), decode(t, session.AccessToken())
	require.Equal(t, before.UserID, after.UserID)
	require.NotEqual(t, before.TokenID, after.TokenID)
	require.NotEqual(t, before.FingerprintHash, after.FingerprintHash, "Fingerprint should be rebound")

	t.Logf("Refresh successful, token %s replaced by %s", before.TokenID, after.TokenID)
}

// TestRefreshRequiresFingerprint verifies a stolen refresh token is useless
// without the browser's fingerprint cookie.
func TestRefreshRequiresFingerprint(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	session := adminSession(t, baseURL)
	hash := decode(t, session.AccessToken()).FingerprintHash

	stranger := authsdk.NewSDKClient(baseURL)
	_, err := stranger.Refresh(t.Context(), session.RefreshToken(), hash)
	assertAPIError(t, err, authsdk.ErrFingerprintMissing)
}

// TestRefreshRejectsStaleFingerprint verifies that after a refresh the
// previous fingerprint hash no longer matches the cookie.
func TestRefreshRejectsStaleFingerprint(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	login, err := client.Login(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err)
	staleHash := decode(t, login.AccessToken).FingerprintHash

	fresh, err := client.Refresh(t.Context(), login.RefreshToken, staleHash)
	require.NoError(t, err)

	_, err = client.Refresh(t.Context(), login.RefreshToken, staleHash)
	assertAPIError(t, err, authsdk.ErrFingerprintInvalid)

	_, err = client.Refresh(t.Context(), login.RefreshToken, decode(t, fresh).FingerprintHash)
	require.NoError(t, err)
}

// TestRefreshUnknownToken verifies an unknown refresh token is rejected once
// the fingerprint checks out.
func TestRefreshUnknownToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	login, err := client.Login(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err)

	_, err = client.Refresh(t.Context(), "not-a-refresh-token", decode(t, login.AccessToken).FingerprintHash)
	assertAPIError(t, err, authsdk.ErrInvalidRefreshToken)
}
