package upstream

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// API identifies an external service for rate-limiting purposes.
type API string

const (
	APIDexScreener API = "dexscreener"
	APICoinGecko   API = "coingecko"
	APIGoPlus      API = "goplus"
	APISentiment   API = "sentiment"
)

// Limiter manages per-API rate limits. It is constructed once at process
// start and injected into every Caller; there is no package-level instance.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[API]*rate.Limiter
}

// NewLimiter returns a limiter with conservative production limits for each
// known API.
func NewLimiter() *Limiter {
	return &Limiter{
		limiters: map[API]*rate.Limiter{
			// DexScreener allows 300 req/min on the public endpoints
			APIDexScreener: rate.NewLimiter(rate.Limit(4), 1),
			// CoinGecko free tier is ~30 req/min
			APICoinGecko: rate.NewLimiter(rate.Limit(0.5), 1),
			APIGoPlus:    rate.NewLimiter(rate.Limit(2), 1),
			APISentiment: rate.NewLimiter(rate.Limit(5), 1),
		},
	}
}

// NewUnlimitedLimiter returns a limiter that never blocks. Used by tests.
func NewUnlimitedLimiter() *Limiter {
	return &Limiter{
		limiters: map[API]*rate.Limiter{
			APIDexScreener: rate.NewLimiter(rate.Inf, 1),
			APICoinGecko:   rate.NewLimiter(rate.Inf, 1),
			APIGoPlus:      rate.NewLimiter(rate.Inf, 1),
			APISentiment:   rate.NewLimiter(rate.Inf, 1),
		},
	}
}

// Wait blocks until the rate limiter permits a call to the given API, or the
// context is canceled. APIs without a configured limiter are not limited.
func (l *Limiter) Wait(ctx context.Context, api API) error {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return nil
	}
	return limiter.Wait(ctx)
}
