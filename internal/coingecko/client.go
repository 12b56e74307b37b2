package coingecko

import (
	"context"

	"tokenintel/internal/token"
	"tokenintel/internal/upstream"
)

// platformNames maps resolver network names to CoinGecko asset-platform
// identifiers. Networks without a mapping fall back to ethereum.
var platformNames = map[string]string{
	"ethereum":  "ethereum",
	"bsc":       "binance-smart-chain",
	"solana":    "solana",
	"polygon":   "polygon-pos",
	"arbitrum":  "arbitrum-one",
	"avalanche": "avalanche",
}

// coinResponse represents the CoinGecko API response for a full coin record.
// Failed contract lookups come back as 200s carrying an error field.
type coinResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Error      string `json:"error"`
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
		MarketCap    map[string]float64 `json:"market_cap"`
		TotalVolume  map[string]float64 `json:"total_volume"`
	} `json:"market_data"`
}

// searchResponse represents the CoinGecko API response for a catalog search.
type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"coins"`
}

// Client queries the CoinGecko catalog for enrichment metadata.
type Client struct {
	caller *upstream.Caller
}

// NewClient creates a CoinGecko client.
func NewClient(baseURL string, limiter *upstream.Limiter) *Client {
	return &Client{
		caller: upstream.NewCaller(upstream.APICoinGecko, baseURL, limiter),
	}
}

// ByContract looks a token up by contract address on the given network.
func (c *Client) ByContract(ctx context.Context, network, address string) (*token.Enrichment, bool) {
	platform, ok := platformNames[network]
	if !ok {
		platform = "ethereum"
	}

	resp, ok := upstream.Get[coinResponse](ctx, c.caller, "/api/v3/coins/"+platform+"/contract/"+address, nil)
	if !ok || resp.Error != "" {
		return nil, false
	}
	return resp.toEnrichment(), true
}

// ByName searches the catalog by name and fetches the first match's full
// record. The search is attempted exactly once; if it yields no match the
// enrichment is absent.
func (c *Client) ByName(ctx context.Context, name string) (*token.Enrichment, bool) {
	search, ok := upstream.Get[searchResponse](ctx, c.caller, "/api/v3/search", map[string]string{
		"query": name,
	})
	if !ok || len(search.Coins) == 0 || search.Coins[0].ID == "" {
		return nil, false
	}

	resp, ok := upstream.Get[coinResponse](ctx, c.caller, "/api/v3/coins/"+search.Coins[0].ID, nil)
	if !ok || resp.Error != "" {
		return nil, false
	}
	return resp.toEnrichment(), true
}

func (r *coinResponse) toEnrichment() *token.Enrichment {
	return &token.Enrichment{
		Name:            r.Name,
		Symbol:          r.Symbol,
		CurrentPriceUSD: r.MarketData.CurrentPrice["usd"],
		MarketCapUSD:    r.MarketData.MarketCap["usd"],
		Volume24hUSD:    r.MarketData.TotalVolume["usd"],
	}
}
