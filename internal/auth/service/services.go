package service

import (
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/pkg/idx"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
)

// Options configures New.
type Options struct {
	Store           store.Store
	Shop            Shop
	TokenLifetime   time.Duration
	RefreshLifetime time.Duration
	Quota           int64

	FingerprintCookie string
	Lockout           Lockout       // optional
	IDs               idx.Generator // token and anonymous user ids, UUIDs by default
	Now               func() time.Time

	// Extra providers are merged after DefaultPermissions.
	PermissionProviders []PermissionProvider
	// Extra hooks run after the fingerprint hook.
	TokenHooks         []BeforeTokenCreationHook
	AuthorizationHooks []BeforeAuthorizationHook
}

// Services is the wired set of auth services sharing one store and clock.
type Services struct {
	Users       *UserService
	Keys        *SignatureKeyService
	Registry    *TokenRegistry
	RefreshRepo *RefreshTokenRepository
	Fingerprint FingerprintBinder
	Tokens      *TokenService
	Refresh     *RefreshTokenService
	Login       *LoginService
	Validator   *TokenValidator
	Authz       *AuthorizationService
	Authn       *Authentication
	Admin       *TokenAdministration
	Bootstrap   *BootstrapService
}

func New(opts Options) *Services {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ids := opts.IDs
	if ids == nil {
		ids = idx.UUIDGenerator{}
	}
	quota := opts.Quota
	if quota <= 0 {
		quota = DefaultTokenQuota
	}

	codec := &jwtx.Codec{Now: now}
	fp := FingerprintBinder{CookieName: opts.FingerprintCookie}

	users := &UserService{Store: opts.Store, IDs: ids, Lockout: opts.Lockout}
	keys := &SignatureKeyService{Store: opts.Store, Now: now}
	registry := &TokenRegistry{Store: opts.Store}
	refreshRepo := &RefreshTokenRepository{Store: opts.Store, Users: users, Now: now}
	users.Refresh = refreshRepo

	tokens := &TokenService{
		Registry: registry,
		Keys:     keys,
		Codec:    codec,
		Auth:     users,
		IDs:      ids,
		Shop:     opts.Shop,
		Lifetime: opts.TokenLifetime,
		Quota:    quota,
		Hooks:    append([]BeforeTokenCreationHook{fp.BeforeTokenCreation}, opts.TokenHooks...),
		Now:      now,
	}

	refresh := &RefreshTokenService{
		Repo:        refreshRepo,
		Tokens:      tokens,
		Fingerprint: fp,
		Shop:        opts.Shop,
		Lifetime:    opts.RefreshLifetime,
	}

	authz := NewAuthorizationService(
		users,
		opts.AuthorizationHooks,
		append([]PermissionProvider{DefaultPermissions}, opts.PermissionProviders...)...,
	)
	authn := &Authentication{Users: users}

	return &Services{
		Users:       users,
		Keys:        keys,
		Registry:    registry,
		RefreshRepo: refreshRepo,
		Fingerprint: fp,
		Tokens:      tokens,
		Refresh:     refresh,
		Login:       &LoginService{Auth: users, Tokens: tokens, Refresh: refresh},
		Validator: &TokenValidator{
			Codec:    codec,
			Keys:     keys,
			Registry: registry,
			Groups:   users,
			Shop:     opts.Shop,
			Now:      now,
		},
		Authz: authz,
		Authn: authn,
		Admin: &TokenAdministration{
			Issuer:   tokens,
			Registry: registry,
			Authz:    authz,
			Authn:    authn,
			Users:    users,
			Keys:     keys,
			Shop:     opts.Shop,
		},
		Bootstrap: &BootstrapService{Users: users},
	}
}
