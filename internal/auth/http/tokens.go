package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/domain"
	"github.com/aussiebroadwan/shopauth/internal/auth/service"
	"github.com/aussiebroadwan/shopauth/pkg/authsdk"
	"github.com/aussiebroadwan/shopauth/pkg/httpx"
)

// TokensHandler serves the token administration endpoints. The service
// enforces login and rights; the handlers only translate.
type TokensHandler struct {
	Admin *service.TokenAdministration
}

// HandleList godoc
//
//	@Summary		List Tokens
//	@Description	Lists registered access tokens. Without VIEW_ANY_TOKEN only the caller's own tokens are listed.
//	@Tags			Administration
//	@Produce		json
//	@Security		BearerAuth
//	@Param			customer_id		query		string					false	"Owner user id"
//	@Param			shop_id			query		int						false	"Shop id"
//	@Param			expires_at_eq	query		string					false	"RFC3339 expiry equals"
//	@Param			expires_at_lt	query		string					false	"RFC3339 expiry before"
//	@Param			expires_at_gt	query		string					false	"RFC3339 expiry after"
//	@Param			expires_at_from	query		string					false	"RFC3339 expiry range start (with expires_at_to)"
//	@Param			expires_at_to	query		string					false	"RFC3339 expiry range end, inclusive"
//	@Param			offset			query		int						false	"Rows to skip"
//	@Param			limit			query		int						false	"Maximum rows"
//	@Param			sort			query		string					false	"Expiry order"	Enums(ASC, DESC)
//	@Success		200				{object}	authsdk.TokensResponse	"tokens"
//	@Failure		400				{object}	authsdk.ErrorResponse	"invalid_request"
//	@Failure		401				"malformed bearer token"
//	@Failure		403				{object}	authsdk.ErrorResponse	"unauthorized"
//	@Router			/v1/tokens [get].
func (h *TokensHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f, p, s, err := parseListing(r)
	if err != nil {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	}

	recs, err := h.Admin.Tokens(r.Context(), f, p, s)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := authsdk.TokensResponse{Tokens: make([]authsdk.TokenInfo, 0, len(recs))}
	for _, rec := range recs {
		resp.Tokens = append(resp.Tokens, authsdk.TokenInfo{
			ID:        rec.ID,
			ShopID:    rec.ShopID,
			UserID:    rec.UserID,
			IssuedAt:  rec.IssuedAt,
			ExpiresAt: rec.ExpiresAt,
			UserAgent: rec.UserAgent,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDelete godoc
//
//	@Summary		Delete Token
//	@Description	Revokes one token. With INVALIDATE_ANY_TOKEN any token, otherwise only the caller's own.
//	@Tags			Administration
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string							true	"Token id"
//	@Success		200	{object}	authsdk.TokenDeletedResponse	"deleted"
//	@Failure		401	"malformed bearer token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"unauthorized, unknown_token"
//	@Router			/v1/tokens/{id} [delete].
func (h *TokensHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	ok, err := h.Admin.TokenDelete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenDeletedResponse{Deleted: ok})
}

// HandleCustomerDelete godoc
//
//	@Summary		Delete Customer Tokens
//	@Description	Revokes every token of a customer, the caller when customer_id is omitted. Other customers need INVALIDATE_ANY_TOKEN.
//	@Tags			Administration
//	@Produce		json
//	@Security		BearerAuth
//	@Param			customer_id	query		string							false	"Customer user id"
//	@Success		200			{object}	authsdk.TokensDeletedResponse	"deleted"
//	@Failure		401			"malformed bearer token"
//	@Failure		403			{object}	authsdk.ErrorResponse	"unauthorized"
//	@Failure		404			{object}	authsdk.ErrorResponse	"user_not_found"
//	@Router			/v1/customers/tokens [delete].
func (h *TokensHandler) HandleCustomerDelete(w http.ResponseWriter, r *http.Request) {
	n, err := h.Admin.CustomerTokensDelete(r.Context(), httpx.OptionalString(r, "customer_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.TokensDeletedResponse{Deleted: n})
}

// HandleShopDelete godoc
//
//	@Summary		Delete Shop Tokens
//	@Description	Revokes every token of this shop. Requires INVALIDATE_ANY_TOKEN.
//	@Tags			Administration
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.TokensDeletedResponse	"deleted"
//	@Failure		401	"malformed bearer token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"unauthorized"
//	@Router			/v1/shop/tokens [delete].
func (h *TokensHandler) HandleShopDelete(w http.ResponseWriter, r *http.Request) {
	n, err := h.Admin.ShopTokensDelete(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.TokensDeletedResponse{Deleted: n})
}

// HandleRegenerateKey godoc
//
//	@Summary		Regenerate Signature Key
//	@Description	Replaces the HS512 signing secret. Every token issued so far fails validation afterwards. Requires REGENERATE_SIGNATURE_KEY.
//	@Tags			Administration
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.RegenerateResponse	"regenerated"
//	@Failure		401	"malformed bearer token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"unauthorized"
//	@Router			/v1/signature-key/regenerate [post].
func (h *TokensHandler) HandleRegenerateKey(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Admin.RegenerateSignatureKey(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.RegenerateResponse{Regenerated: ok})
}

// parseListing reads filter, pagination and sorting from the query string.
// Range checks are left to the service.
func parseListing(r *http.Request) (domain.TokenFilter, domain.Pagination, domain.Sorting, error) {
	var (
		f domain.TokenFilter
		p domain.Pagination
		s = domain.DefaultSorting()
	)

	f.CustomerID = httpx.OptionalString(r, "customer_id")

	shopID, err := httpx.OptionalInt(r, "shop_id")
	if err != nil {
		return f, p, s, err
	}
	f.ShopID = shopID

	var date domain.DateFilter
	for key, dst := range map[string]**time.Time{
		"expires_at_eq": &date.Equals,
		"expires_at_lt": &date.LessThan,
		"expires_at_gt": &date.GreaterThan,
	} {
		t, err := optionalTime(r, key)
		if err != nil {
			return f, p, s, err
		}
		*dst = t
	}

	from, err := optionalTime(r, "expires_at_from")
	if err != nil {
		return f, p, s, err
	}
	to, err := optionalTime(r, "expires_at_to")
	if err != nil {
		return f, p, s, err
	}
	switch {
	case from != nil && to != nil:
		date.Between = &[2]time.Time{*from, *to}
	case from != nil || to != nil:
		return f, p, s, fmt.Errorf("expires_at_from and expires_at_to go together")
	}
	if !date.IsZero() {
		f.ExpiresAt = &date
	}

	offset, err := httpx.OptionalInt(r, "offset")
	if err != nil {
		return f, p, s, err
	}
	if offset != nil {
		p.Offset = *offset
	}
	if p.Limit, err = httpx.OptionalInt(r, "limit"); err != nil {
		return f, p, s, err
	}

	if sort := httpx.OptionalString(r, "sort"); sort != nil {
		s.ExpiresAt = strings.ToUpper(*sort)
	}
	return f, p, s, nil
}

func optionalTime(r *http.Request, key string) (*time.Time, error) {
	v := httpx.OptionalString(r, key)
	if v == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, fmt.Errorf("%s: not an RFC3339 time", key)
	}
	t = t.UTC()
	return &t, nil
}
