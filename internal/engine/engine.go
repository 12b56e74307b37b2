// Package engine sequences resolution, market lookup, enrichment, risk
// scoring, and sentiment into one fused record. Every upstream is optional;
// absence is substituted with a documented default and nothing escapes the
// orchestrator as an error.
package engine

import (
	"context"
	"log/slog"
	"time"

	"tokenintel/internal/token"
)

// IdentityResolver resolves a raw identifier to a canonical identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, raw string) (token.Identity, bool)
}

// MarketSource serves pool data, both by direct token lookup and by
// free-text search.
type MarketSource interface {
	Search(ctx context.Context, network, query string) ([]token.Pool, bool)
	Lookup(ctx context.Context, address string) ([]token.Pool, bool)
}

// Enricher serves centralized catalog metadata.
type Enricher interface {
	ByContract(ctx context.Context, network, address string) (*token.Enrichment, bool)
	ByName(ctx context.Context, name string) (*token.Enrichment, bool)
}

// RiskScorer serves the token-security signal.
type RiskScorer interface {
	Score(ctx context.Context, network, address string) (token.Risk, bool)
}

// SentimentSource serves the social-sentiment signal.
type SentimentSource interface {
	Snapshot(ctx context.Context, address string) (token.SentimentSignal, bool)
}

// defaultNetwork is assumed when resolution fails and the market fallback
// still finds pools for the raw identifier.
const defaultNetwork = "ethereum"

// Engine is the fusion orchestrator.
type Engine struct {
	resolver  IdentityResolver
	markets   MarketSource
	enricher  Enricher
	risk      RiskScorer
	sentiment SentimentSource
	now       func() time.Time
}

// New creates an Engine over the given collaborators.
func New(resolver IdentityResolver, markets MarketSource, enricher Enricher, risk RiskScorer, sentiment SentimentSource) *Engine {
	return &Engine{
		resolver:  resolver,
		markets:   markets,
		enricher:  enricher,
		risk:      risk,
		sentiment: sentiment,
		now:       time.Now,
	}
}

// Fuse runs the full sequence for one raw identifier and always returns a
// record: OK when a pool was found, UNLISTED when no pool exists anywhere,
// ERROR when something genuinely unexpected happened.
func (e *Engine) Fuse(ctx context.Context, raw string) (rec token.Record) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("fusion sequence panicked", "identifier", raw, "panic", r)
			rec = token.ErrorRecord(e.now())
		}
	}()

	address := raw
	network := defaultNetwork
	if identity, ok := e.resolver.Resolve(ctx, raw); ok {
		address = identity.Address
		network = identity.Network
	}

	// Direct lookup by canonical address, then broad search as last resort.
	pools, ok := e.markets.Lookup(ctx, address)
	if !ok || len(pools) == 0 {
		slog.Debug("no pools from direct lookup, falling back to search", "identifier", raw)
		pools, _ = e.markets.Search(ctx, "", address)
	}
	if len(pools) == 0 {
		slog.Info("token unlisted on all venues", "identifier", raw)
		return token.UnlistedRecord(e.now())
	}

	top := pools[0]
	snapshot := token.MarketSnapshot{
		Name:         top.Name,
		Symbol:       top.Symbol,
		PriceUSD:     top.PriceUSD,
		LiquidityUSD: top.LiquidityUSD,
		FDVUSD:       top.FDVUSD,
		Volume24hUSD: top.Volume24hUSD,
		DexID:        top.DexID,
	}
	// The pool's own base-token address is the most reliable canonical
	// identity from here on.
	if top.Address != "" {
		address = top.Address
	}
	if top.Network != "" {
		network = top.Network
	}

	enrichment, ok := e.enricher.ByContract(ctx, network, address)
	if !ok {
		name := snapshot.Name
		if name == "" {
			name = raw
		}
		enrichment, _ = e.enricher.ByName(ctx, name)
	}

	risk, _ := e.risk.Score(ctx, network, address)
	if risk.RugRisk == "" {
		risk.RugRisk = token.RugRiskUnknown
	}

	signal, ok := e.sentiment.Snapshot(ctx, address)
	if !ok {
		signal = token.NeutralSentiment()
	}

	return fuse(snapshot, enrichment, risk, signal, e.now())
}

// fuse applies the field-by-field precedence rules: first non-absent wins,
// with the market snapshot ahead of enrichment for live figures and
// enrichment ahead of the snapshot for naming.
func fuse(snap token.MarketSnapshot, enr *token.Enrichment, risk token.Risk, signal token.SentimentSignal, now time.Time) token.Record {
	if enr == nil {
		enr = &token.Enrichment{}
	}

	return token.Record{
		Name:             firstNonEmpty(enr.Name, snap.Name, "Unknown"),
		Symbol:           firstNonEmpty(enr.Symbol, snap.Symbol, "N/A"),
		Sentiment:        signal.Sentiment,
		AverageScore:     signal.AverageScore,
		PriceUSD:         firstAmount(snap.PriceUSD, enr.CurrentPriceUSD),
		LiquidityUSD:     firstAmount(snap.LiquidityUSD),
		MarketCapUSD:     firstAmount(snap.FDVUSD, enr.MarketCapUSD),
		Volume24hUSD:     firstAmount(snap.Volume24hUSD, enr.Volume24hUSD),
		DexID:            firstNonEmpty(snap.DexID, "N/A"),
		RugRisk:          risk.RugRisk,
		MentionCount:     signal.MentionCount,
		CelebrityMention: signal.CelebrityMention,
		UpdatedAt:        now,
		Status:           token.StatusOK,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstAmount returns the first non-zero value, or NotApplicable when every
// candidate is absent.
func firstAmount(values ...float64) token.Amount {
	for _, v := range values {
		if v != 0 {
			return token.Amount(v)
		}
	}
	return token.NotApplicable
}
