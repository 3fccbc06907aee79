package trials

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/unitytrials/trialmatch/internal/registry"
)

type fakeRegistry struct {
	lastQuery registry.Query
	payload   map[string]any
	err       error
}

func (f *fakeRegistry) Search(_ context.Context, q registry.Query) (map[string]any, error) {
	f.lastQuery = q
	return f.payload, f.err
}

func (f *fakeRegistry) Details(context.Context, string) (map[string]any, error) {
	return f.payload, f.err
}

func (f *fakeRegistry) CompleteDetails(context.Context, string) (map[string]any, error) {
	return f.payload, f.err
}

func TestSearchDefaultsStatusAndLimit(t *testing.T) {
	fake := &fakeRegistry{payload: map[string]any{"studies": []any{}, "totalCount": float64(0)}}
	svc := NewService(fake, zerolog.Nop())

	if _, err := svc.Search(context.Background(), registry.Query{Condition: "diabetes"}); err != nil {
		t.Fatal(err)
	}
	if fake.lastQuery.Status != "Recruiting" {
		t.Fatalf("expected Recruiting default, got %q", fake.lastQuery.Status)
	}
	if fake.lastQuery.Limit != registry.DefaultPageSize {
		t.Fatalf("expected default limit, got %d", fake.lastQuery.Limit)
	}
}

func TestSearchTransformsAndPaginates(t *testing.T) {
	fake := &fakeRegistry{payload: map[string]any{
		"studies": []any{
			map[string]any{"NCTId": "NCT1", "BriefTitle": "A", "Status": "Recruiting"},
			map[string]any{"NCTId": "NCT2", "BriefTitle": "B"},
		},
		"totalCount": float64(12),
		"pageToken":  "next",
	}}
	svc := NewService(fake, zerolog.Nop())

	res, err := svc.Search(context.Background(), registry.Query{Condition: "cancer", Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Trials) != 2 || res.Total != 12 || res.PageToken != "next" || !res.HasMore {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Trials[0].NCTID != "NCT1" {
		t.Fatalf("unexpected first trial %+v", res.Trials[0])
	}
}

func TestSearchUSAForcesCountry(t *testing.T) {
	fake := &fakeRegistry{payload: map[string]any{"studies": []any{}}}
	svc := NewService(fake, zerolog.Nop())
	if _, err := svc.SearchUSA(context.Background(), registry.Query{Condition: "asthma"}); err != nil {
		t.Fatal(err)
	}
	if fake.lastQuery.Country != "United States" {
		t.Fatalf("expected USA scope, got %q", fake.lastQuery.Country)
	}
}

func TestSearchPropagatesClientError(t *testing.T) {
	fake := &fakeRegistry{err: errors.New("boom")}
	svc := NewService(fake, zerolog.Nop())
	if _, err := svc.Search(context.Background(), registry.Query{Condition: "x"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSortByScore(t *testing.T) {
	in := []Trial{{NCTID: "a", MatchScore: 60}, {NCTID: "b", MatchScore: 90}, {NCTID: "c", MatchScore: 75}}
	out := SortByScore(in)
	if out[0].NCTID != "b" || out[1].NCTID != "c" || out[2].NCTID != "a" {
		t.Fatalf("unexpected order %v", out)
	}
	if in[0].NCTID != "a" {
		t.Fatal("input mutated")
	}
}
