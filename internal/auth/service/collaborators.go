package service

import (
	"context"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
)

// CredentialAuthenticator checks login credentials. Empty username and
// password yield an anonymous user with a fresh id; bad credentials yield
// ErrInvalidLogin.
type CredentialAuthenticator interface {
	Login(ctx context.Context, username, password string) (domain.User, error)
}

// GroupMembershipProvider lists a user's group ids. An empty id has no
// groups; an unknown user is reported as [domain.GroupAnonymous].
type GroupMembershipProvider interface {
	UserGroupIDs(ctx context.Context, userID string) ([]string, error)
}

// UserDirectory resolves user ids. Unknown ids yield ErrUserNotFound.
type UserDirectory interface {
	UserByID(ctx context.Context, id string) (domain.User, error)
}

// CookieStore reads and writes HTTP-only cookies of one HTTP exchange.
type CookieStore interface {
	SetCookie(name, value string)
	Cookie(name string) (string, bool)
}

// SignatureKeyStore supplies the current signing secret and replaces it on
// demand.
type SignatureKeyStore interface {
	jwtx.KeySource
	Regenerate(ctx context.Context) error
}

// Exchange is the request-scoped state token flows read and write.
type Exchange struct {
	UserAgent string
	Cookies   CookieStore
}

// Shop identifies the shop tokens are issued for. URL is used as both
// issuer and audience.
type Shop struct {
	ID  int64
	URL string
}

func (s Shop) constraints() jwtx.Constraints {
	return jwtx.Constraints{Issuer: s.URL, Audience: s.URL, ShopID: s.ID}
}
