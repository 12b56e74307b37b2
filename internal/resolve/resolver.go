package resolve

import (
	"context"
	"log/slog"

	"tokenintel/internal/token"
)

// DefaultNetworks is the fixed priority order in which candidate networks
// are consulted. The order is a priority list, not a scored ranking: the
// first network with a pool match wins and later entries are never queried.
var DefaultNetworks = []string{
	"ethereum",
	"bsc",
	"solana",
	"base",
	"arbitrum",
	"optimism",
	"avalanche",
}

// PoolFinder is the slice of the pool service the resolver needs.
type PoolFinder interface {
	Search(ctx context.Context, network, query string) ([]token.Pool, bool)
}

// Resolver turns an arbitrary identifier (ticker, name, or contract address)
// into a canonical on-chain identity.
type Resolver struct {
	finder   PoolFinder
	networks []string
}

// New creates a Resolver. An empty networks slice falls back to
// DefaultNetworks.
func New(finder PoolFinder, networks []string) *Resolver {
	if len(networks) == 0 {
		networks = DefaultNetworks
	}
	return &Resolver{finder: finder, networks: networks}
}

// Resolve walks the candidate networks in priority order and searches each
// for pools matching the raw identifier. The first non-empty result supplies
// the identity: its top pool's base-token address on the network that
// produced it. No match across the whole list is reported as unresolved, not
// as a failure; the caller degrades to the raw identifier.
func (r *Resolver) Resolve(ctx context.Context, raw string) (token.Identity, bool) {
	for _, network := range r.networks {
		pools, ok := r.finder.Search(ctx, network, raw)
		if !ok || len(pools) == 0 {
			continue
		}

		identity := token.Identity{Network: network, Address: raw}
		if pools[0].Network != "" {
			identity.Network = pools[0].Network
		}
		if pools[0].Address != "" {
			identity.Address = pools[0].Address
		}
		slog.Debug("resolved token identity",
			"raw", raw, "network", identity.Network, "address", identity.Address)
		return identity, true
	}

	slog.Debug("identifier unresolved on all networks", "raw", raw)
	return token.Identity{}, false
}
