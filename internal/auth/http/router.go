package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
	"github.com/aussiebroadwan/shopauth/pkg/slogx"

	_ "github.com/aussiebroadwan/shopauth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookieMode   httpx.CookieMode

	store    store.Store
	services *service.Services
}

func NewRouter(
	svcs *service.Services,
	st store.Store,
	cookieMode httpx.CookieMode,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cookieMode:   cookieMode,
		store:        st,
		services:     svcs,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerAdministration()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Shop Authentication Service API
//	@version		0.1.0
//	@description	Issues HS512 access tokens bound to a browser fingerprint cookie, opaque refresh tokens, and token administration for a shop.
//	@description
//	@description				Requests without an Authorization header act as anonymous callers.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS512 access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	// POST /token and /login - strict rate limit by IP + username to slow down
	// credential guessing
	r.Mux.Handle("POST /v1/token",
		httpx.Chain(&TokenHandler{Tokens: r.services.Tokens, CookieMode: r.cookieMode},
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(&LoginHandler{Login: r.services.Login, CookieMode: r.cookieMode},
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	// POST /refresh - moderate rate limit by IP
	r.Mux.Handle("POST /v1/refresh",
		httpx.Chain(&RefreshHandler{Refresh: r.services.Refresh, CookieMode: r.cookieMode},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdministration() {
	h := &TokensHandler{Admin: r.services.Admin}

	// Bearer validation runs before the per-user limiter so the limiter keys
	// on the validated user id.
	secured := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.services.Validator, writeServiceError),
			httpx.RequireUser(denyAnonymous),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /v1/tokens", secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/tokens/{id}", secured(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/customers/tokens", secured(h.HandleCustomerDelete, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/shop/tokens", secured(h.HandleShopDelete, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/signature-key/regenerate", secured(h.HandleRegenerateKey, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	h := &HealthHandlers{
		StartTime: r.startTime,
		Version:   r.buildVersion,
		Store:     r.store,
		Keys:      r.services.Keys,
	}

	// Monitoring systems poll these frequently
	r.Mux.Handle("GET /livez", httpx.Chain(http.HandlerFunc(h.HandleLivez), httpx.RateLimitByIP(httpx.PublicLimit)))
	r.Mux.Handle("GET /readyz", httpx.Chain(http.HandlerFunc(h.HandleReadyz), httpx.RateLimitByIP(httpx.PublicLimit)))
}
