// Package watch periodically re-resolves watched identifiers and alerts
// when a token's figures cross the favorability threshold.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"tokenintel/internal/notify"
	"tokenintel/internal/token"
)

// FavorableThreshold is the score at which a watched token triggers an
// alert and leaves the watch-list.
const FavorableThreshold = 6

// RecordSource is the slice of the engine service the monitor needs.
type RecordSource interface {
	ResolveToken(ctx context.Context, raw string, bypassCache bool) token.Record
}

// Favorability scores a fused record: deep liquidity and volume, a clean
// security signal, and bullish sentiment each contribute.
func Favorability(rec token.Record) int {
	score := 0
	if rec.LiquidityUSD > 20000 {
		score += 2
	}
	if rec.Volume24hUSD > 10000 {
		score += 2
	}
	if rec.RugRisk == token.RugRiskLow {
		score += 3
	}
	if rec.Sentiment == token.SentimentBullish {
		score += 2
	}
	return score
}

// Monitor holds per-user watch-lists and sweeps them on an interval.
type Monitor struct {
	source   RecordSource
	notifier notify.Notifier
	interval time.Duration

	mu    sync.Mutex
	lists map[string]map[string]struct{}
}

// New creates a Monitor sweeping at the given interval.
func New(source RecordSource, notifier notify.Notifier, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Monitor{
		source:   source,
		notifier: notifier,
		interval: interval,
		lists:    make(map[string]map[string]struct{}),
	}
}

// Watch adds an identifier to a user's watch-list.
func (m *Monitor) Watch(user, identifier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.lists[user]
	if !ok {
		set = make(map[string]struct{})
		m.lists[user] = set
	}
	set[identifier] = struct{}{}
}

// Unwatch removes an identifier from a user's watch-list.
func (m *Monitor) Unwatch(user, identifier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.lists[user]
	if !ok {
		return
	}
	delete(set, identifier)
	if len(set) == 0 {
		delete(m.lists, user)
	}
}

// List returns a user's watched identifiers, sorted.
func (m *Monitor) List(user string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.lists[user]))
	for id := range m.lists[user] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run sweeps the watch-lists until the context is canceled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

type watched struct {
	user       string
	identifier string
}

// Sweep re-resolves every watched identifier concurrently and alerts on the
// favorable ones, removing them from their lists. Delivery failures are
// logged and the entry stays watched for the next sweep.
func (m *Monitor) Sweep(ctx context.Context) {
	m.mu.Lock()
	var targets []watched
	for user, set := range m.lists {
		for id := range set {
			targets = append(targets, watched{user: user, identifier: id})
		}
	}
	m.mu.Unlock()

	if len(targets) == 0 {
		return
	}
	slog.Debug("sweeping watch-lists", "entries", len(targets))

	favorable := make(chan watched, len(targets))
	var wg sync.WaitGroup
	for _, t := range targets {
		wg.Add(1)
		go func(t watched) {
			defer wg.Done()
			rec := m.source.ResolveToken(ctx, t.identifier, false)
			if rec.Status == token.StatusOK && Favorability(rec) >= FavorableThreshold {
				favorable <- t
			}
		}(t)
	}

	go func() {
		wg.Wait()
		close(favorable)
	}()

	for t := range favorable {
		message := fmt.Sprintf("%s is looking favorable", t.identifier)
		if err := m.notifier.Alert(ctx, t.user, message); err != nil {
			slog.Warn("failed to deliver watch alert",
				"user", t.user, "identifier", t.identifier, "error", err)
			continue
		}
		m.Unwatch(t.user, t.identifier)
	}
}
