package dexscreener

import (
	"context"
	"strconv"

	"tokenintel/internal/token"
	"tokenintel/internal/upstream"
)

// pairsResponse represents the DexScreener API response for both the token
// lookup and search endpoints.
type pairsResponse struct {
	SchemaVersion string     `json:"schemaVersion"`
	Pairs         []pairData `json:"pairs"`
}

type pairData struct {
	ChainID     string         `json:"chainId"`
	DexID       string         `json:"dexId"`
	PairAddress string         `json:"pairAddress"`
	BaseToken   baseToken      `json:"baseToken"`
	PriceUsd    string         `json:"priceUsd"`
	Volume      pairVolume     `json:"volume"`
	Liquidity   *pairLiquidity `json:"liquidity"`
	Fdv         float64        `json:"fdv"`
	MarketCap   float64        `json:"marketCap"`
}

type baseToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type pairVolume struct {
	H24 float64 `json:"h24"`
}

type pairLiquidity struct {
	Usd float64 `json:"usd"`
}

// Client queries the DexScreener pool search and lookup endpoints. Pools are
// returned in the upstream's own ranking; callers take the top result.
type Client struct {
	caller *upstream.Caller
}

// NewClient creates a DexScreener client.
func NewClient(baseURL string, limiter *upstream.Limiter) *Client {
	return &Client{
		caller: upstream.NewCaller(upstream.APIDexScreener, baseURL, limiter),
	}
}

// Search performs a free-text pool search. When network is non-empty, only
// pools on that network are returned, so an ordered walk over candidate
// networks sees each network's matches in isolation.
func (c *Client) Search(ctx context.Context, network, query string) ([]token.Pool, bool) {
	resp, ok := upstream.Get[pairsResponse](ctx, c.caller, "/latest/dex/search", map[string]string{
		"q": query,
	})
	if !ok {
		return nil, false
	}

	var pools []token.Pool
	for _, p := range resp.Pairs {
		if network != "" && p.ChainID != network {
			continue
		}
		pools = append(pools, p.toPool())
	}
	return pools, true
}

// Lookup fetches the pools trading the given token address directly.
func (c *Client) Lookup(ctx context.Context, address string) ([]token.Pool, bool) {
	resp, ok := upstream.Get[pairsResponse](ctx, c.caller, "/latest/dex/tokens/"+address, nil)
	if !ok {
		return nil, false
	}

	pools := make([]token.Pool, 0, len(resp.Pairs))
	for _, p := range resp.Pairs {
		pools = append(pools, p.toPool())
	}
	return pools, true
}

func (p pairData) toPool() token.Pool {
	pool := token.Pool{
		Network:      p.ChainID,
		DexID:        p.DexID,
		Address:      p.BaseToken.Address,
		Name:         p.BaseToken.Name,
		Symbol:       p.BaseToken.Symbol,
		FDVUSD:       p.Fdv,
		Volume24hUSD: p.Volume.H24,
	}
	// priceUsd is a decimal string on the wire
	if price, err := strconv.ParseFloat(p.PriceUsd, 64); err == nil {
		pool.PriceUSD = price
	}
	if p.Liquidity != nil {
		pool.LiquidityUSD = p.Liquidity.Usd
	}
	return pool
}
