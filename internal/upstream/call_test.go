package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type payload struct {
	Value string `json:"value"`
}

func newTestCaller(t *testing.T, handler http.HandlerFunc) *Caller {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCaller(APIDexScreener, server.URL, NewUnlimitedLimiter())
}

func TestGet_Success(t *testing.T) {
	caller := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "doge" {
			t.Errorf("query param q = %q, want %q", got, "doge")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value":"hello"}`))
	})

	out, ok := Get[payload](context.Background(), caller, "/path", map[string]string{"q": "doge"})
	if !ok {
		t.Fatal("Get() reported absence for a healthy upstream")
	}
	if out.Value != "hello" {
		t.Errorf("Value = %q, want %q", out.Value, "hello")
	}
}

func TestGet_NonSuccessStatus(t *testing.T) {
	caller := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	if _, ok := Get[payload](context.Background(), caller, "/path", nil); ok {
		t.Error("Get() reported presence for a 404 response")
	}
}

func TestGet_MalformedPayload(t *testing.T) {
	caller := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": not-json`))
	})

	if _, ok := Get[payload](context.Background(), caller, "/path", nil); ok {
		t.Error("Get() reported presence for an undecodable 2xx body")
	}
}

func TestGet_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	caller := NewCaller(APIDexScreener, url, NewUnlimitedLimiter())
	if _, ok := Get[payload](context.Background(), caller, "/path", nil); ok {
		t.Error("Get() reported presence for a dead upstream")
	}
}

func TestGet_CanceledContext(t *testing.T) {
	caller := newTestCaller(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":"hello"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok := Get[payload](ctx, caller, "/path", nil); ok {
		t.Error("Get() reported presence despite canceled context")
	}
}
