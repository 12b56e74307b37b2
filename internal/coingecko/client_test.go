package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tokenintel/internal/upstream"
)

const dogecoinBody = `{
	"id": "dogecoin",
	"name": "Dogecoin",
	"symbol": "doge",
	"market_data": {
		"current_price": {"usd": 0.13},
		"market_cap": {"usd": 900000000},
		"total_volume": {"usd": 45000000}
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, upstream.NewUnlimitedLimiter())
}

func TestByContract(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/coins/binance-smart-chain/contract/0xABC" {
			t.Errorf("path = %q, want bsc platform contract lookup", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(dogecoinBody))
	})

	enr, ok := client.ByContract(context.Background(), "bsc", "0xABC")
	if !ok {
		t.Fatal("ByContract() reported absence")
	}
	if enr.Name != "Dogecoin" || enr.MarketCapUSD != 900000000 {
		t.Errorf("enrichment = %+v, want Dogecoin with 900000000 market cap", enr)
	}
}

func TestByContract_UnknownNetworkFallsBackToEthereum(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/coins/ethereum/contract/0xABC" {
			t.Errorf("path = %q, want ethereum platform", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(dogecoinBody))
	})

	if _, ok := client.ByContract(context.Background(), "unheard-of-chain", "0xABC"); !ok {
		t.Error("ByContract() reported absence")
	}
}

func TestByContract_ErrorPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"coin not found"}`))
	})

	if _, ok := client.ByContract(context.Background(), "ethereum", "0xABC"); ok {
		t.Error("ByContract() reported presence for an error payload")
	}
}

func TestByName(t *testing.T) {
	var searchCalls, coinCalls atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v3/search":
			searchCalls.Add(1)
			if got := r.URL.Query().Get("query"); got != "Dogecoin" {
				t.Errorf("search query = %q, want Dogecoin", got)
			}
			w.Write([]byte(`{"coins":[{"id":"dogecoin","name":"Dogecoin","symbol":"doge"}]}`))
		case "/api/v3/coins/dogecoin":
			coinCalls.Add(1)
			w.Write([]byte(dogecoinBody))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	enr, ok := client.ByName(context.Background(), "Dogecoin")
	if !ok {
		t.Fatal("ByName() reported absence")
	}
	if enr.CurrentPriceUSD != 0.13 {
		t.Errorf("CurrentPriceUSD = %v, want 0.13", enr.CurrentPriceUSD)
	}
	if searchCalls.Load() != 1 || coinCalls.Load() != 1 {
		t.Errorf("search=%d coin=%d calls, want exactly one each",
			searchCalls.Load(), coinCalls.Load())
	}
}

func TestByName_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"coins":[]}`))
	})

	if _, ok := client.ByName(context.Background(), "nonexistent"); ok {
		t.Error("ByName() reported presence with no catalog match")
	}
}
