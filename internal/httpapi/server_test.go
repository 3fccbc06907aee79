package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/unitytrials/trialmatch/internal/chatbot"
	"github.com/unitytrials/trialmatch/internal/registry"
	"github.com/unitytrials/trialmatch/internal/trials"
)

type fakeTrialService struct {
	lastQuery  registry.Query
	lastNCT    string
	result     trials.Result
	trial      trials.Trial
	searchErr  error
	detailsErr error
}

func (f *fakeTrialService) Search(ctx context.Context, q registry.Query) (trials.Result, error) {
	f.lastQuery = q
	return f.result, f.searchErr
}

func (f *fakeTrialService) SearchUSA(ctx context.Context, q registry.Query) (trials.Result, error) {
	q.Country = "United States"
	f.lastQuery = q
	return f.result, f.searchErr
}

func (f *fakeTrialService) Details(ctx context.Context, nctID string) (trials.Trial, error) {
	f.lastNCT = nctID
	return f.trial, f.detailsErr
}

func (f *fakeTrialService) CompleteDetails(ctx context.Context, nctID string) (trials.Trial, error) {
	f.lastNCT = nctID
	return f.trial, f.detailsErr
}

type fakeChat struct {
	resp chatbot.Response
}

func (f *fakeChat) Process(ctx context.Context, message string) chatbot.Response {
	return f.resp
}

func newTestServer(svc TrialService, chat ChatService) http.Handler {
	return NewServer(svc, chat, nil, zerolog.Nop()).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path string, body []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return rec, payload
}

func TestHealth(t *testing.T) {
	h := newTestServer(&fakeTrialService{}, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/health", nil)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if payload["status"] != "ok" {
		t.Fatalf("payload %v", payload)
	}
}

func TestSearchRequiresOneParameter(t *testing.T) {
	h := newTestServer(&fakeTrialService{}, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/trials", nil)
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if payload["error"] != "BAD_REQUEST" {
		t.Fatalf("error = %v", payload["error"])
	}
}

func TestSearchJunkConditionRejected(t *testing.T) {
	// "what else" normalizes to nothing, so with no other facets the
	// request is invalid rather than a registry-wide search.
	h := newTestServer(&fakeTrialService{}, &fakeChat{})
	rec, _ := doRequest(t, h, http.MethodGet, "/api/trials?condition=what+else", nil)
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchUSARequiresOneFilter(t *testing.T) {
	svc := &fakeTrialService{}
	h := newTestServer(svc, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/trials/usa", nil)
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400 for empty usa search", rec.Code)
	}
	if payload["error"] != "BAD_REQUEST" {
		t.Fatalf("error = %v", payload["error"])
	}
	if svc.lastQuery != (registry.Query{}) {
		t.Fatal("no search should have run")
	}

	rec, _ = doRequest(t, h, http.MethodGet, "/api/trials/usa?condition=diabetes", nil)
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200 with a condition", rec.Code)
	}
}

func TestSuggestions(t *testing.T) {
	h := newTestServer(&fakeTrialService{}, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/suggestions", nil)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	data := payload["data"].(map[string]any)
	conditions, ok := data["conditions"].([]any)
	if !ok || len(conditions) == 0 {
		t.Fatalf("conditions missing: %v", data["conditions"])
	}
	phases, ok := data["phases"].(map[string]any)
	if !ok {
		t.Fatalf("phases missing: %v", data["phases"])
	}
	if desc, _ := phases["Phase 1"].(string); desc == "" {
		t.Fatalf("Phase 1 description missing: %v", phases)
	}
	questions, ok := data["questions"].([]any)
	if !ok || len(questions) == 0 {
		t.Fatalf("questions missing: %v", data["questions"])
	}
}

func TestSearchNormalizesConditionAndDefaults(t *testing.T) {
	svc := &fakeTrialService{result: trials.Result{
		Trials: []trials.Trial{{NCTID: "NCT00000001"}},
		Total:  42,
	}}
	h := newTestServer(svc, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/trials?condition=heart&limit=5", nil)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.lastQuery.Condition != "cardiovascular" {
		t.Fatalf("condition = %q, want cardiovascular", svc.lastQuery.Condition)
	}
	if svc.lastQuery.Status != "Recruiting" {
		t.Fatalf("status default = %q", svc.lastQuery.Status)
	}
	if svc.lastQuery.Limit != 5 {
		t.Fatalf("limit = %d", svc.lastQuery.Limit)
	}
	if payload["success"] != true {
		t.Fatalf("success = %v", payload["success"])
	}
	if payload["total"] != float64(42) {
		t.Fatalf("total = %v", payload["total"])
	}
}

func TestSearchFailureCarriesFallbackData(t *testing.T) {
	svc := &fakeTrialService{searchErr: &registry.StatusError{Code: 500}}
	h := newTestServer(svc, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/trials?condition=diabetes", nil)
	if rec.Code != 502 {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if payload["success"] != false {
		t.Fatalf("success = %v", payload["success"])
	}
	if payload["error"] != "SERVER_ERROR" {
		t.Fatalf("error = %v", payload["error"])
	}
	fallback, ok := payload["fallbackData"].([]any)
	if !ok || len(fallback) == 0 {
		t.Fatalf("fallbackData missing: %v", payload["fallbackData"])
	}
	if payload["retryAfter"] != float64(120) {
		t.Fatalf("retryAfter = %v", payload["retryAfter"])
	}
}

func TestRateLimitedSearch(t *testing.T) {
	svc := &fakeTrialService{searchErr: registry.ErrRateLimited}
	h := newTestServer(svc, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/trials?condition=cancer", nil)
	if rec.Code != 429 {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if payload["retryAfter"] != float64(60) {
		t.Fatalf("retryAfter = %v", payload["retryAfter"])
	}
}

func TestDetailsNotFoundHasNoFallback(t *testing.T) {
	svc := &fakeTrialService{detailsErr: &registry.StatusError{Code: 404}}
	h := newTestServer(svc, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/trials/details/NCT99999999", nil)
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if _, present := payload["fallbackData"]; present {
		t.Fatal("details lookup must not carry fallback trials")
	}
	if svc.lastNCT != "NCT99999999" {
		t.Fatalf("nct = %q", svc.lastNCT)
	}
}

func TestDetailsSuccess(t *testing.T) {
	svc := &fakeTrialService{trial: trials.Trial{NCTID: "NCT04280705", Title: "Remdesivir Study"}}
	h := newTestServer(svc, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodGet, "/api/trials/details/NCT04280705", nil)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	data := payload["data"].(map[string]any)
	if data["nctId"] != "NCT04280705" {
		t.Fatalf("data = %v", data)
	}
}

func TestPostTrialRequiresNCTID(t *testing.T) {
	h := newTestServer(&fakeTrialService{}, &fakeChat{})
	rec, _ := doRequest(t, h, http.MethodPost, "/api/trials", []byte(`{}`))
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	rec, _ = doRequest(t, h, http.MethodPost, "/api/trials", []byte(`not json`))
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400 for malformed body", rec.Code)
	}
}

func TestPostTrialLooksUpByID(t *testing.T) {
	svc := &fakeTrialService{trial: trials.Trial{NCTID: "NCT12345678"}}
	h := newTestServer(svc, &fakeChat{})
	rec, payload := doRequest(t, h, http.MethodPost, "/api/trials", []byte(`{"nctId":"NCT12345678"}`))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.lastNCT != "NCT12345678" {
		t.Fatalf("nct = %q", svc.lastNCT)
	}
	if payload["success"] != true {
		t.Fatalf("success = %v", payload["success"])
	}
}

func TestChatRequiresMessage(t *testing.T) {
	h := newTestServer(&fakeTrialService{}, &fakeChat{})
	rec, _ := doRequest(t, h, http.MethodPost, "/api/chat", []byte(`{"sessionId":"s1"}`))
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChatReturnsRouterResponse(t *testing.T) {
	chat := &fakeChat{resp: chatbot.Response{
		Message: "Hello! I'm Unity AI, your clinical trial finder.",
		Intent:  chatbot.IntentGreeting,
	}}
	h := newTestServer(&fakeTrialService{}, chat)
	rec, payload := doRequest(t, h, http.MethodPost, "/api/chat", []byte(`{"message":"hi","sessionId":"s1"}`))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	data := payload["data"].(map[string]any)
	if data["intent"] != "greeting" {
		t.Fatalf("intent = %v", data["intent"])
	}
}
