package goplus

import (
	"bytes"
	"context"
	"strings"

	"tokenintel/internal/token"
	"tokenintel/internal/upstream"
)

// securityResponse represents the GoPlus token_security API response. The
// result map is keyed by contract address, which the service lowercases.
type securityResponse struct {
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Result  map[string]tokenSecurity `json:"result"`
}

type tokenSecurity struct {
	IsHoneypot flag `json:"is_honeypot"`
}

// flag tolerates the API's mixed encodings: "1", 1, "0", 0.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.Trim(data, `"`)
	*f = string(trimmed) == "1"
	return nil
}

// Client queries the GoPlus token-security service.
type Client struct {
	caller *upstream.Caller
}

// NewClient creates a GoPlus client.
func NewClient(baseURL string, limiter *upstream.Limiter) *Client {
	return &Client{
		caller: upstream.NewCaller(upstream.APIGoPlus, baseURL, limiter),
	}
}

// Score retrieves the security signal for a token. HIGH means the service
// flagged the token as a honeypot; LOW means the service responded without
// flagging it; UNKNOWN means the service did not answer for this address.
func (c *Client) Score(ctx context.Context, network, address string) (token.Risk, bool) {
	resp, ok := upstream.Get[securityResponse](ctx, c.caller, "/api/v1/token_security/"+network, map[string]string{
		"contract_addresses": address,
	})
	if !ok {
		return token.Risk{RugRisk: token.RugRiskUnknown}, false
	}

	sec, found := resp.Result[address]
	if !found {
		sec, found = resp.Result[strings.ToLower(address)]
	}
	if !found {
		return token.Risk{RugRisk: token.RugRiskUnknown}, false
	}

	if sec.IsHoneypot {
		return token.Risk{RugRisk: token.RugRiskHigh}, true
	}
	return token.Risk{RugRisk: token.RugRiskLow}, true
}
