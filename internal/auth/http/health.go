package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/store"
	"github.com/aussiebroadwan/shopauth/pkg/authsdk"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
	"github.com/aussiebroadwan/shopauth/pkg/jwtx"
)

// HealthHandlers serve the liveness and readiness probes.
type HealthHandlers struct {
	StartTime time.Time
	Version   string
	Store     store.Store
	Keys      jwtx.KeySource
}

func (h *HealthHandlers) response(status string) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.StartTime).Round(time.Second).String(),
		Version: h.Version,
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 whenever the process is serving requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func (h *HealthHandlers) HandleLivez(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.response("ok"))
}

// HandleReadyz godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database and the signature key. Without a usable key no token can be issued or validated.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"all checks ok"
//	@Failure		503	{object}	authsdk.HealthResponse	"at least one check failed"
//	@Router			/readyz [get].
func (h *HealthHandlers) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := &authsdk.HealthChecks{Database: "ok", SignatureKey: "ok"}
	code := http.StatusOK

	if err := h.Store.Ping(r.Context()); err != nil {
		checks.Database = "error: " + err.Error()
		code = http.StatusServiceUnavailable
	}
	if _, err := h.Keys.SignatureKey(r.Context()); err != nil {
		checks.SignatureKey = "error: " + err.Error()
		code = http.StatusServiceUnavailable
	}

	resp := h.response("ok")
	if code != http.StatusOK {
		resp.Status = "degraded"
	}
	resp.Checks = checks
	httpx.WriteJSON(w, code, resp)
}
