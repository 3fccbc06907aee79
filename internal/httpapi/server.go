// Package httpapi exposes the trial search and chat services over HTTP
// with a uniform JSON envelope. Successful responses carry
// {success:true, data:...}; failures carry the classified error kind, a
// user-facing message, and fallback trials where that makes sense.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/unitytrials/trialmatch/internal/chatbot"
	"github.com/unitytrials/trialmatch/internal/comprehend"
	"github.com/unitytrials/trialmatch/internal/errclass"
	"github.com/unitytrials/trialmatch/internal/eventlog"
	"github.com/unitytrials/trialmatch/internal/registry"
	"github.com/unitytrials/trialmatch/internal/trials"
)

// TrialService is the slice of the trials layer the handlers need.
type TrialService interface {
	Search(ctx context.Context, q registry.Query) (trials.Result, error)
	SearchUSA(ctx context.Context, q registry.Query) (trials.Result, error)
	Details(ctx context.Context, nctID string) (trials.Trial, error)
	CompleteDetails(ctx context.Context, nctID string) (trials.Trial, error)
}

// ChatService answers chat messages.
type ChatService interface {
	Process(ctx context.Context, message string) chatbot.Response
}

type Server struct {
	svc    TrialService
	chat   ChatService
	events *eventlog.Log
	log    zerolog.Logger
}

func NewServer(svc TrialService, chat ChatService, events *eventlog.Log, log zerolog.Logger) *Server {
	return &Server{svc: svc, chat: chat, events: events, log: log}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/suggestions", s.handleSuggestions)
	r.Get("/api/trials", s.handleSearch)
	r.Get("/api/trials/usa", s.handleSearchUSA)
	r.Get("/api/trials/details/{nctID}", s.handleDetails)
	r.Post("/api/trials", s.handleTrialByID)
	r.Post("/api/chat", s.handleChat)
	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeClassified renders a registry failure. searchContext picks which
// fallback trials ride along; withFallback false omits them entirely.
func writeClassified(w http.ResponseWriter, err error, searchContext string, withFallback bool) {
	c := errclass.Classify(err)
	payload := map[string]any{
		"success":     false,
		"error":       c.Kind,
		"userMessage": c.UserMessage,
	}
	if c.RetryAfter > 0 {
		payload["retryAfter"] = c.RetryAfter
	}
	if withFallback {
		payload["fallbackData"] = errclass.FallbackTrials(searchContext)
	}
	writeJSON(w, c.Status, payload)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success":     false,
		"error":       errclass.KindBadRequest,
		"userMessage": msg,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSuggestions serves the static prompts the search and chat UIs
// offer before the user has typed anything.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"conditions": trials.Suggestions(),
			"phases":     trials.PhaseDescriptions(),
			"questions":  chatbot.FAQSuggestions(),
		},
	})
}

func queryFromRequest(r *http.Request) (registry.Query, string) {
	v := r.URL.Query()
	rawCondition := v.Get("condition")
	q := registry.Query{
		Condition: comprehend.NormalizeCondition(rawCondition),
		Location:  v.Get("location"),
		Phase:     v.Get("phase"),
		Status:    v.Get("status"),
		Country:   v.Get("country"),
	}
	if q.Status == "" {
		q.Status = "Recruiting"
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil && n > 0 {
		q.Limit = n
	}
	if n, err := strconv.Atoi(v.Get("offset")); err == nil && n > 0 {
		q.Offset = n
	}
	return q, rawCondition
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, rawCondition := queryFromRequest(r)
	if q.Condition == "" && q.Location == "" && q.Phase == "" && q.Country == "" {
		writeBadRequest(w, "At least one search parameter (condition, location, phase, or country) is required")
		return
	}
	s.serveSearch(w, r, q, rawCondition, "general", s.svc.Search)
}

func (s *Server) handleSearchUSA(w http.ResponseWriter, r *http.Request) {
	q, rawCondition := queryFromRequest(r)
	// Country is implied here, so it does not count as a filter.
	if q.Condition == "" && q.Location == "" && q.Phase == "" {
		writeBadRequest(w, "At least one search parameter (condition, location, or phase) is required")
		return
	}
	s.serveSearch(w, r, q, rawCondition, "usa_only", s.svc.SearchUSA)
}

func (s *Server) serveSearch(w http.ResponseWriter, r *http.Request, q registry.Query, rawCondition, searchType string, search func(context.Context, registry.Query) (trials.Result, error)) {
	result, err := search(r.Context(), q)
	if err != nil {
		s.log.Warn().Err(err).Str("condition", q.Condition).Msg("trial search failed")
		writeClassified(w, err, rawCondition+" "+q.Condition, true)
		return
	}

	s.events.RecordSearch(eventlog.SearchEvent{
		Query: rawCondition,
		Filters: map[string]string{
			"condition": q.Condition,
			"location":  q.Location,
			"phase":     q.Phase,
			"status":    q.Status,
			"country":   q.Country,
		},
		ResultsCount: len(result.Trials),
		SearchType:   searchType,
		IPAddress:    r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      result.Trials,
		"total":     result.Total,
		"pageToken": result.PageToken,
	})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	nctID := chi.URLParam(r, "nctID")
	if nctID == "" {
		writeBadRequest(w, "NCT ID is required")
		return
	}
	trial, err := s.svc.CompleteDetails(r.Context(), nctID)
	if err != nil {
		s.log.Warn().Err(err).Str("nct_id", nctID).Msg("trial details failed")
		// A missing study gets no fallback data; substitutes would mislead.
		writeClassified(w, err, "", false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    trial,
	})
}

func (s *Server) handleTrialByID(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NCTID string `json:"nctId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if body.NCTID == "" {
		writeBadRequest(w, "NCT ID is required")
		return
	}
	trial, err := s.svc.Details(r.Context(), body.NCTID)
	if err != nil {
		s.log.Warn().Err(err).Str("nct_id", body.NCTID).Msg("trial lookup failed")
		writeClassified(w, err, "", false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    trial,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if body.Message == "" {
		writeBadRequest(w, "message is required")
		return
	}

	resp := s.chat.Process(r.Context(), body.Message)

	s.events.RecordChat(eventlog.ChatEvent{
		SessionID:   body.SessionID,
		MessageType: "user",
		Content:     body.Message,
	})
	s.events.RecordChat(eventlog.ChatEvent{
		SessionID:      body.SessionID,
		MessageType:    "bot",
		Content:        resp.Message,
		Intent:         resp.Intent,
		TrialsReturned: len(resp.Trials),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    resp,
	})
}
