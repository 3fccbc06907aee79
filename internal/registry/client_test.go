package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestSearchTermConstruction(t *testing.T) {
	var gotTerm, gotFields string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("query.term")
		gotFields = r.URL.Query().Get("fields")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"studies":[],"totalCount":0}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.Search(context.Background(), Query{
		Condition: "diabetes",
		Status:    "Recruiting",
		Country:   "usa",
		Phase:     "phase 3",
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotTerm != "diabetes Recruiting United States phase 3" {
		t.Fatalf("unexpected query.term %q", gotTerm)
	}
	if gotFields != essentialFields {
		t.Fatalf("expected essential field set, got %q", gotFields)
	}
}

func TestSearchEmptyFiltersUsesDefaultTerm(t *testing.T) {
	var gotTerm string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("query.term")
		_, _ = w.Write([]byte(`{"studies":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if _, err := c.Search(context.Background(), Query{}); err != nil {
		t.Fatal(err)
	}
	if gotTerm != "clinical trial" {
		t.Fatalf("expected default term, got %q", gotTerm)
	}
}

func TestCachedSearchSkipsNetworkAndRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"studies":[{"NCTId":"NCT1"}],"totalCount":1}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	q := Query{Condition: "cancer"}
	first, err := c.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
	if first["totalCount"] != second["totalCount"] {
		t.Fatalf("expected identical payloads, got %v vs %v", first, second)
	}
	used, _, _ := c.RateLimitStatus()
	if used != 1 {
		t.Fatalf("cached call must not consume rate budget, used=%d", used)
	}
}

func TestRateLimitDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"studies":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client(), RateLimitPerHour: 1})
	if _, err := c.Search(context.Background(), Query{Condition: "a"}); err != nil {
		t.Fatal(err)
	}
	_, err := c.Search(context.Background(), Query{Condition: "b"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestStaleFallbackAfterUpstreamFailure(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"studies":[{"NCTId":"NCT7"}],"totalCount":1}`))
	}))
	defer srv.Close()

	now := time.Now()
	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	c.cache.now = func() time.Time { return now }

	q := Query{Condition: "heart"}
	if _, err := c.Search(context.Background(), q); err != nil {
		t.Fatal(err)
	}

	// Push the cached entry past its TTL, then break the upstream.
	now = now.Add(2 * time.Hour)
	fail.Store(true)

	out, err := c.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("expected stale fallback, got %v", err)
	}
	if out["totalCount"].(float64) != 1 {
		t.Fatalf("unexpected stale payload %v", out)
	}
}

func TestNoCachePropagatesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.Details(context.Background(), "NCT00000000")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}

func TestCompleteDetailsRequestsDetailFields(t *testing.T) {
	var gotFields string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFields = r.URL.Query().Get("fields")
		_, _ = w.Write([]byte(`{"NCTId":"NCT1"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if _, err := c.CompleteDetails(context.Background(), "NCT1"); err != nil {
		t.Fatal(err)
	}
	if gotFields == "" || len(gotFields) < len(essentialFields) {
		t.Fatalf("expected exhaustive field list, got %q", gotFields)
	}
}
