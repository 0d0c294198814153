/*
Package authsdk provides a client SDK for the shop authentication service.

# Overview

The service issues short-lived HS512 access tokens bound to a browser
fingerprint cookie, long-lived opaque refresh tokens, and exposes token
administration for logged-in users. SDKClient covers the public endpoints;
Session wraps a logged-in user and renews its access token on demand.

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Anonymous token
	token, err := client.AnonymousToken(ctx)

	// Access token only
	token, err = client.Token(ctx, "alice", "secret")

	// Access and refresh token
	session, err := client.LoginSession(ctx, "alice", "secret")

# Fingerprint Cookie

Every issued access token carries the SHA-256 of a random fingerprint kept in
an HTTP-only cookie. A refresh must present both the cookie and the hash from
the last access token. NewSDKClient installs a cookie jar so this works out of
the box; a client built by hand needs one too.

# Automatic Token Refresh

Session methods call getValidToken, which refreshes the access token 30 seconds
before its exp claim using the stored refresh token. The refresh token itself
is not rotated.

# Administration

	tokens, err := session.ListTokens(ctx, authsdk.TokensQuery{Sort: "DESC"})
	ok, err := session.DeleteToken(ctx, tokens[0].ID)
	n, err := session.DeleteCustomerTokens(ctx, "") // the caller's own tokens
	n, err = session.DeleteShopTokens(ctx)           // INVALIDATE_ANY_TOKEN
	ok, err = session.RegenerateSignatureKey(ctx)    // REGENERATE_SIGNATURE_KEY

# Error Handling

Failed calls return an *APIError carrying the HTTP status and a stable code.
The predefined values compare with errors.Is:

	_, err := client.Token(ctx, "alice", "wrong")
	if errors.Is(err, authsdk.ErrInvalidLogin) {
		// ...
	}

# Thread Safety

Sessions are safe for concurrent use.
*/
package authsdk
