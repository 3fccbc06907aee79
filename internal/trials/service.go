package trials

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/unitytrials/trialmatch/internal/registry"
)

// Registry is the slice of the registry client the service needs.
type Registry interface {
	Search(ctx context.Context, q registry.Query) (map[string]any, error)
	Details(ctx context.Context, nctID string) (map[string]any, error)
	CompleteDetails(ctx context.Context, nctID string) (map[string]any, error)
}

// Service searches the registry and returns transformed trials.
type Service struct {
	client Registry
	scorer Scorer
	now    func() time.Time
	log    zerolog.Logger
}

func NewService(client Registry, log zerolog.Logger) *Service {
	return &Service{client: client, scorer: MatchScore, now: time.Now, log: log}
}

// SetScorer overrides the match-score heuristic.
func (s *Service) SetScorer(scorer Scorer) {
	if scorer != nil {
		s.scorer = scorer
	}
}

// Search runs a list query, defaulting status to Recruiting and the page
// size to ten.
func (s *Service) Search(ctx context.Context, q registry.Query) (Result, error) {
	if q.Status == "" {
		q.Status = "Recruiting"
	}
	if q.Limit <= 0 {
		q.Limit = registry.DefaultPageSize
	}

	raw, err := s.client.Search(ctx, q)
	if err != nil {
		return Result{}, err
	}

	now := s.now()
	studies, _ := raw["studies"].([]any)
	out := Result{Trials: make([]Trial, 0, len(studies))}
	for _, item := range studies {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out.Trials = append(out.Trials, Transform(record, s.scorer, now))
	}

	out.Total = intVal(raw["totalCount"])
	if out.Total == 0 {
		out.Total = len(out.Trials)
	}
	out.PageToken = str(raw["pageToken"])
	out.HasMore = len(out.Trials) == q.Limit

	s.log.Debug().Int("trials", len(out.Trials)).Int("total", out.Total).Msg("trial search complete")
	return out, nil
}

// SearchUSA scopes a search to trials in the United States.
func (s *Service) SearchUSA(ctx context.Context, q registry.Query) (Result, error) {
	q.Country = "United States"
	return s.Search(ctx, q)
}

// SearchByCondition is a convenience wrapper used by the chat flow.
func (s *Service) SearchByCondition(ctx context.Context, condition string, limit int) ([]Trial, error) {
	res, err := s.Search(ctx, registry.Query{Condition: condition, Limit: limit})
	if err != nil {
		return nil, err
	}
	return res.Trials, nil
}

// Details fetches and transforms one study.
func (s *Service) Details(ctx context.Context, nctID string) (Trial, error) {
	raw, err := s.client.Details(ctx, nctID)
	if err != nil {
		return Trial{}, err
	}
	return Transform(raw, s.scorer, s.now()), nil
}

// CompleteDetails fetches one study with the exhaustive field set.
func (s *Service) CompleteDetails(ctx context.Context, nctID string) (Trial, error) {
	raw, err := s.client.CompleteDetails(ctx, nctID)
	if err != nil {
		return Trial{}, err
	}
	return Transform(raw, s.scorer, s.now()), nil
}

// SortByScore returns a copy ordered by descending match score.
func SortByScore(in []Trial) []Trial {
	out := make([]Trial, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	return out
}

// Suggestions lists common conditions for search prompts.
func Suggestions() []string {
	return []string{
		"cancer", "diabetes", "heart disease", "lung cancer", "breast cancer",
		"prostate cancer", "leukemia", "lymphoma", "depression", "anxiety",
		"alzheimer", "parkinson", "asthma", "copd", "rheumatoid arthritis",
		"lupus", "multiple sclerosis",
	}
}

// PhaseDescriptions explains trial phases for user education.
func PhaseDescriptions() map[string]string {
	return map[string]string{
		"Phase 1": "Safety and dosage studies with a small group of people",
		"Phase 2": "Effectiveness studies with a larger group",
		"Phase 3": "Large-scale studies to confirm effectiveness and monitor side effects",
		"Phase 4": "Post-marketing studies after FDA approval",
	}
}
