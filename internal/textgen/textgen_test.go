package textgen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

type stubGen struct {
	out string
	err error
}

func (s stubGen) Generate(ctx context.Context, prompt string) (string, error) {
	return s.out, s.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	chain := NewChain(zerolog.Nop(),
		stubGen{err: errors.New("offline")},
		stubGen{out: "from second"},
		stubGen{out: "never reached"},
	)
	got, err := chain.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("chain should not error: %v", err)
	}
	if got != "from second" {
		t.Fatalf("got %q", got)
	}
}

func TestChainEmptyOutputSkipped(t *testing.T) {
	chain := NewChain(zerolog.Nop(), stubGen{out: "   "}, stubGen{out: "real"})
	got, _ := chain.Generate(context.Background(), "hi")
	if got != "real" {
		t.Fatalf("got %q", got)
	}
}

func TestChainAllFailReturnsCanned(t *testing.T) {
	chain := NewChain(zerolog.Nop(), stubGen{err: errors.New("a")}, nil, stubGen{err: errors.New("b")})
	got, err := chain.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("chain should absorb failures: %v", err)
	}
	if got != CannedFallback {
		t.Fatalf("got %q, want canned fallback", got)
	}
}

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"response":"hello from llama","done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "")
	got, err := p.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello from llama" {
		t.Fatalf("got %q", got)
	}
}

func TestOllamaNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "")
	if _, err := p.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestHuggingFaceResponseShapes(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`[{"generated_text":"array shape"}]`, "array shape"},
		{`{"generated_text":"object shape"}`, "object shape"},
		{`"bare string"`, "bare string"},
	}
	for _, c := range cases {
		body := c.body
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer k" {
				t.Errorf("auth header = %q", got)
			}
			w.Write([]byte(body))
		}))
		p := NewHuggingFaceProvider(srv.URL, "k")
		got, err := p.Generate(context.Background(), "hi")
		srv.Close()
		if err != nil {
			t.Fatalf("body %s: %v", c.body, err)
		}
		if got != c.want {
			t.Fatalf("body %s: got %q, want %q", c.body, got, c.want)
		}
	}
}
