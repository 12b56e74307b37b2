package watch

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"tokenintel/internal/testutil"
	"tokenintel/internal/token"
)

func favorableRecord() token.Record {
	return token.Record{
		Name:         "Some Token",
		Status:       token.StatusOK,
		LiquidityUSD: 50000,
		Volume24hUSD: 20000,
		RugRisk:      token.RugRiskLow,
		Sentiment:    token.SentimentBullish,
	}
}

func TestFavorability(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*token.Record)
		want   int
	}{
		{"all signals", func(*token.Record) {}, 9},
		{"no sentiment", func(r *token.Record) { r.Sentiment = token.SentimentNeutral }, 7},
		{"thin liquidity", func(r *token.Record) { r.LiquidityUSD = 100 }, 7},
		{"risky", func(r *token.Record) { r.RugRisk = token.RugRiskHigh }, 6},
		{"unlisted sentinel amounts", func(r *token.Record) {
			r.LiquidityUSD = token.NotApplicable
			r.Volume24hUSD = token.NotApplicable
			r.RugRisk = token.RugRiskUnknown
			r.Sentiment = token.SentimentNeutral
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := favorableRecord()
			tt.mutate(&rec)
			if got := Favorability(rec); got != tt.want {
				t.Errorf("Favorability() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWatchListUnwatch(t *testing.T) {
	m := New(&testutil.StubRecordSource{}, &testutil.StubNotifier{}, time.Minute)

	m.Watch("alice", "DOGE")
	m.Watch("alice", "PEPE")
	m.Watch("bob", "DOGE")

	if got := m.List("alice"); !reflect.DeepEqual(got, []string{"DOGE", "PEPE"}) {
		t.Errorf("List(alice) = %v, want [DOGE PEPE]", got)
	}

	m.Unwatch("alice", "DOGE")
	if got := m.List("alice"); !reflect.DeepEqual(got, []string{"PEPE"}) {
		t.Errorf("List(alice) after Unwatch = %v, want [PEPE]", got)
	}
	if got := m.List("bob"); !reflect.DeepEqual(got, []string{"DOGE"}) {
		t.Errorf("List(bob) = %v, want [DOGE]", got)
	}
}

func TestSweep_AlertsAndRemovesFavorable(t *testing.T) {
	source := &testutil.StubRecordSource{
		Records: map[string]token.Record{
			"DOGE": favorableRecord(),
			"DUST": {Status: token.StatusOK, RugRisk: token.RugRiskHigh},
		},
	}
	notifier := &testutil.StubNotifier{}
	m := New(source, notifier, time.Minute)
	m.Watch("alice", "DOGE")
	m.Watch("alice", "DUST")

	m.Sweep(context.Background())

	if len(notifier.Alerts) != 1 {
		t.Fatalf("alerts = %v, want exactly one for DOGE", notifier.Alerts)
	}
	if got := m.List("alice"); !reflect.DeepEqual(got, []string{"DUST"}) {
		t.Errorf("watch-list after sweep = %v, want favorable entry removed", got)
	}
}

func TestSweep_SkipsDegradedRecords(t *testing.T) {
	// an unlisted record never alerts even if the score math would pass
	source := &testutil.StubRecordSource{
		Records: map[string]token.Record{
			"deadcoin": token.UnlistedRecord(time.Now()),
		},
	}
	notifier := &testutil.StubNotifier{}
	m := New(source, notifier, time.Minute)
	m.Watch("alice", "deadcoin")

	m.Sweep(context.Background())

	if len(notifier.Alerts) != 0 {
		t.Errorf("alerts = %v, want none for an unlisted token", notifier.Alerts)
	}
	if got := m.List("alice"); !reflect.DeepEqual(got, []string{"deadcoin"}) {
		t.Errorf("watch-list = %v, want entry kept", got)
	}
}

func TestSweep_DeliveryFailureKeepsEntry(t *testing.T) {
	source := &testutil.StubRecordSource{
		Records: map[string]token.Record{"DOGE": favorableRecord()},
	}
	notifier := &testutil.StubNotifier{Err: errors.New("telegram down")}
	m := New(source, notifier, time.Minute)
	m.Watch("alice", "DOGE")

	m.Sweep(context.Background())

	if got := m.List("alice"); !reflect.DeepEqual(got, []string{"DOGE"}) {
		t.Errorf("watch-list = %v, want entry retained for the next sweep", got)
	}
}

func TestSweep_Empty(t *testing.T) {
	source := &testutil.StubRecordSource{}
	m := New(source, &testutil.StubNotifier{}, time.Minute)

	m.Sweep(context.Background())
	if source.Calls.Load() != 0 {
		t.Errorf("source consulted %d times for empty lists, want 0", source.Calls.Load())
	}
}
