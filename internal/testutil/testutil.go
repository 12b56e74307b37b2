// Package testutil provides stub upstream collaborators for engine, cache,
// and watch tests. Each stub counts its calls so tests can assert how many
// times a fallback step ran.
package testutil

import (
	"context"
	"sync/atomic"

	"tokenintel/internal/token"
)

// StubResolver is a stub identity resolver.
type StubResolver struct {
	Calls    atomic.Int64
	Identity token.Identity
	OK       bool
}

func (s *StubResolver) Resolve(ctx context.Context, raw string) (token.Identity, bool) {
	s.Calls.Add(1)
	return s.Identity, s.OK
}

// StubMarket is a stub pool source with separate lookup and search results.
type StubMarket struct {
	LookupCalls atomic.Int64
	SearchCalls atomic.Int64

	LookupPools []token.Pool
	LookupOK    bool
	SearchPools []token.Pool
	SearchOK    bool

	// SearchFunc, when set, overrides the fixed search results.
	SearchFunc func(network, query string) ([]token.Pool, bool)
}

func (s *StubMarket) Lookup(ctx context.Context, address string) ([]token.Pool, bool) {
	s.LookupCalls.Add(1)
	return s.LookupPools, s.LookupOK
}

func (s *StubMarket) Search(ctx context.Context, network, query string) ([]token.Pool, bool) {
	s.SearchCalls.Add(1)
	if s.SearchFunc != nil {
		return s.SearchFunc(network, query)
	}
	return s.SearchPools, s.SearchOK
}

// StubEnricher is a stub catalog source.
type StubEnricher struct {
	ContractCalls atomic.Int64
	NameCalls     atomic.Int64

	Contract   *token.Enrichment
	ContractOK bool
	Named      *token.Enrichment
	NamedOK    bool
}

func (s *StubEnricher) ByContract(ctx context.Context, network, address string) (*token.Enrichment, bool) {
	s.ContractCalls.Add(1)
	return s.Contract, s.ContractOK
}

func (s *StubEnricher) ByName(ctx context.Context, name string) (*token.Enrichment, bool) {
	s.NameCalls.Add(1)
	return s.Named, s.NamedOK
}

// StubRisk is a stub security scorer.
type StubRisk struct {
	Calls atomic.Int64
	Risk  token.Risk
	OK    bool
}

func (s *StubRisk) Score(ctx context.Context, network, address string) (token.Risk, bool) {
	s.Calls.Add(1)
	return s.Risk, s.OK
}

// StubSentiment is a stub sentiment provider.
type StubSentiment struct {
	Calls  atomic.Int64
	Signal token.SentimentSignal
	OK     bool
}

func (s *StubSentiment) Snapshot(ctx context.Context, address string) (token.SentimentSignal, bool) {
	s.Calls.Add(1)
	return s.Signal, s.OK
}

// StubRecordSource serves canned records per identifier for watch tests.
type StubRecordSource struct {
	Calls   atomic.Int64
	Records map[string]token.Record
}

func (s *StubRecordSource) ResolveToken(ctx context.Context, raw string, bypassCache bool) token.Record {
	s.Calls.Add(1)
	return s.Records[raw]
}

// StubNotifier records delivered alerts.
type StubNotifier struct {
	Alerts []string
	Err    error
}

func (s *StubNotifier) Alert(ctx context.Context, user, message string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Alerts = append(s.Alerts, user+": "+message)
	return nil
}
