// Package comprehend turns free-form user text into structured trial
// search filters. A keyword fast path handles the common phrasings; an
// optional language-model pass covers everything else, and its output is
// never trusted blindly.
package comprehend

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Filters is the structured reading of a user message. Empty fields mean
// the message did not mention that facet.
type Filters struct {
	Condition string
	Phase     string
	Location  string
}

// Empty reports whether no facet was extracted at all.
func (f Filters) Empty() bool {
	return f.Condition == "" && f.Phase == "" && f.Location == ""
}

// Generator produces a completion for a prompt. Implementations live in
// the textgen package.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Comprehend extracts filters using the keyword tables only. It never
// fails; an unrecognized message yields empty Filters.
func Comprehend(message string) Filters {
	lower := strings.ToLower(message)
	var f Filters
	for canonical, words := range conditionKeywords {
		if containsAny(lower, words) {
			f.Condition = canonical
			break
		}
	}
	for canonical, words := range phaseKeywords {
		if containsAny(lower, words) {
			f.Phase = canonical
			break
		}
	}
	for canonical, words := range locationKeywords {
		if containsAny(lower, words) {
			f.Location = canonical
			break
		}
	}
	return f
}

const extractPrompt = `Extract clinical trial search parameters from this message. Respond with exactly three comma-separated values: condition,phase,location. Use the word null for any value not mentioned. Message: `

// ComprehendWithGenerator runs the keyword fast path first and falls back
// to the generator only when the fast path found nothing. A malformed or
// failed generation degrades silently to the fast-path result.
func ComprehendWithGenerator(ctx context.Context, gen Generator, log zerolog.Logger, message string) Filters {
	f := Comprehend(message)
	if !f.Empty() || gen == nil {
		return f
	}
	out, err := gen.Generate(ctx, extractPrompt+message)
	if err != nil {
		log.Debug().Err(err).Msg("generator extraction failed, using keyword result")
		return f
	}
	return parseTriple(out)
}

// parseTriple reads a "condition,phase,location" reply. Anything that is
// not exactly three fields is treated as no extraction.
func parseTriple(out string) Filters {
	parts := strings.Split(strings.TrimSpace(out), ",")
	if len(parts) != 3 {
		return Filters{}
	}
	clean := func(s string) string {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "null" || s == "none" {
			return ""
		}
		return s
	}
	return Filters{
		Condition: clean(parts[0]),
		Phase:     clean(parts[1]),
		Location:  clean(parts[2]),
	}
}

// NormalizeCondition maps informal input onto the search vocabulary and
// drops terms that are not plausibly medical. The empty return means the
// input should not be sent to the registry as a condition.
func NormalizeCondition(condition string) string {
	c := strings.TrimSpace(strings.ToLower(condition))
	if c == "" {
		return ""
	}
	if mapped, ok := conditionSynonyms[c]; ok {
		return mapped
	}
	for _, term := range validMedicalTerms {
		if strings.Contains(c, term) || strings.Contains(term, c) {
			return c
		}
	}
	return ""
}

// MentionsCondition reports whether the message matches any condition
// keyword. The chat router uses it to tell a search request apart from
// small talk.
func MentionsCondition(message string) bool {
	lower := strings.ToLower(message)
	for _, words := range conditionKeywords {
		if containsAny(lower, words) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
