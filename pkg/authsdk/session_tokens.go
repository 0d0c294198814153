package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ListTokens lists registered tokens. Without the VIEW_ANY_TOKEN right only
// the caller's own tokens are returned.
func (s *Session) ListTokens(ctx context.Context, q TokensQuery) ([]TokenInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/tokens?"+q.values().Encode(), nil)
	if err != nil {
		return nil, err
	}

	var tokensResp TokensResponse
	if err := decodeJSON(resp, &tokensResp, http.StatusOK); err != nil {
		return nil, err
	}
	return tokensResp.Tokens, nil
}

// DeleteToken revokes one token.
func (s *Session) DeleteToken(ctx context.Context, tokenID string) (bool, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/tokens/"+url.PathEscape(tokenID), nil)
	if err != nil {
		return false, err
	}

	var deleted TokenDeletedResponse
	if err := decodeJSON(resp, &deleted, http.StatusOK); err != nil {
		return false, err
	}
	return deleted.Deleted, nil
}

// DeleteCustomerTokens revokes every token of a customer. An empty id means
// the caller.
func (s *Session) DeleteCustomerTokens(ctx context.Context, customerID string) (int64, error) {
	path := "/v1/customers/tokens"
	if customerID != "" {
		path += "?" + url.Values{"customer_id": {customerID}}.Encode()
	}
	return s.bulkDelete(ctx, path)
}

// DeleteShopTokens revokes every token of the shop.
func (s *Session) DeleteShopTokens(ctx context.Context) (int64, error) {
	return s.bulkDelete(ctx, "/v1/shop/tokens")
}

func (s *Session) bulkDelete(ctx context.Context, path string) (int64, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return 0, err
	}

	var deleted TokensDeletedResponse
	if err := decodeJSON(resp, &deleted, http.StatusOK); err != nil {
		return 0, err
	}
	return deleted.Deleted, nil
}

// RegenerateSignatureKey replaces the signing secret. Every token issued so
// far, this session's included, stops validating.
func (s *Session) RegenerateSignatureKey(ctx context.Context) (bool, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/signature-key/regenerate", nil)
	if err != nil {
		return false, err
	}

	var regen RegenerateResponse
	if err := decodeJSON(resp, &regen, http.StatusOK); err != nil {
		return false, err
	}
	return regen.Regenerated, nil
}

func (q TokensQuery) values() url.Values {
	v := url.Values{}
	if q.CustomerID != "" {
		v.Set("customer_id", q.CustomerID)
	}
	if q.ShopID != 0 {
		v.Set("shop_id", strconv.FormatInt(q.ShopID, 10))
	}
	setTime := func(key string, t *time.Time) {
		if t != nil {
			v.Set(key, t.UTC().Format(time.RFC3339))
		}
	}
	setTime("expires_at_eq", q.ExpiresAtEquals)
	setTime("expires_at_lt", q.ExpiresAtLessThan)
	setTime("expires_at_gt", q.ExpiresAtGreaterThan)
	if q.ExpiresAtBetween != nil {
		setTime("expires_at_from", &q.ExpiresAtBetween[0])
		setTime("expires_at_to", &q.ExpiresAtBetween[1])
	}
	if q.Offset != 0 {
		v.Set("offset", strconv.FormatInt(q.Offset, 10))
	}
	if q.Limit != nil {
		v.Set("limit", strconv.FormatInt(*q.Limit, 10))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}
