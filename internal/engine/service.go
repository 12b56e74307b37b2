package engine

import (
	"context"
	"time"

	"tokenintel/internal/cache"
	"tokenintel/internal/token"
)

// Service is the inbound surface of the engine: cached, deduplicated token
// resolution. It never returns an error; the record's Status field carries
// degraded outcomes.
type Service struct {
	cache *cache.Cache
}

// NewService wraps an Engine with the single-flight TTL cache.
func NewService(e *Engine, ttl time.Duration) *Service {
	return &Service{cache: cache.New(ttl, e.Fuse)}
}

// ResolveToken returns the fused record for a raw identifier. With
// bypassCache set the cached value is skipped for the read, but the request
// still deduplicates against concurrent fetches and its result is written
// back.
func (s *Service) ResolveToken(ctx context.Context, raw string, bypassCache bool) token.Record {
	return s.cache.Get(ctx, raw, bypassCache)
}
