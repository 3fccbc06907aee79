// Package trials maps raw registry records into the normalized Trial
// representation and wraps the registry client as a search service.
package trials

import (
	"fmt"
	"strings"
	"time"
)

const notSpecified = "Not specified"

// Scorer computes a 0-100 match score for a raw record. The default is a
// deterministic additive heuristic: a presentation convenience, not a
// statistical ranking. Replace it on the Service to change ranking.
type Scorer func(raw map[string]any, now time.Time) int

// Transform normalizes one raw registry record. Pure: no I/O, never
// panics on missing or scalar-instead-of-array fields.
func Transform(raw map[string]any, scorer Scorer, now time.Time) Trial {
	if scorer == nil {
		scorer = MatchScore
	}
	nctID := str(raw["NCTId"])
	id := nctID
	if id == "" {
		id = fmt.Sprintf("trial-%d", now.UnixMilli())
	}
	title := strOr(raw["BriefTitle"], "Untitled Study")
	official := str(raw["OfficialTitle"])
	if official == "" {
		official = title
	}

	return Trial{
		ID:             id,
		NCTID:          nctID,
		Title:          title,
		OfficialTitle:  official,
		Acronym:        str(raw["Acronym"]),
		Condition:      listOr(raw["Condition"], notSpecified),
		MeshConditions: list(raw["ConditionMeshTerm"]),
		Phase:          listOr(raw["Phase"], notSpecified),
		Status:         strOr(firstOf(raw, "Status", "OverallStatus"), "Unknown"),
		StudyType:      strOr(raw["StudyType"], notSpecified),
		Location: Location{
			Country:  listOr(raw["LocationCountry"], notSpecified),
			State:    list(raw["LocationState"]),
			City:     list(raw["LocationCity"]),
			Facility: list(raw["LocationFacility"]),
		},
		Sponsor: Sponsor{
			Lead:                strOr(raw["LeadSponsorName"], notSpecified),
			LeadClass:           strOr(raw["LeadSponsorClass"], notSpecified),
			Collaborators:       list(raw["CollaboratorName"]),
			CollaboratorClasses: list(raw["CollaboratorClass"]),
		},
		Description: Description{
			Brief:    strOr(raw["BriefSummary"], "No brief description available"),
			Detailed: strOr(raw["DetailedDescription"], "No detailed description available"),
		},
		Eligibility: Eligibility{
			Criteria:          strOr(raw["EligibilityCriteria"], "Contact study coordinator for eligibility information"),
			AgeRange:          FormatAgeRange(str(raw["MinimumAge"]), str(raw["MaximumAge"])),
			Sex:               strOr(raw["Sex"], "All"),
			HealthyVolunteers: strOr(raw["HealthyVolunteers"], notSpecified),
			StudyPopulation:   strOr(raw["StudyPopulation"], notSpecified),
			SamplingMethod:    strOr(raw["SamplingMethod"], notSpecified),
		},
		Enrollment: Enrollment{
			Count:       intVal(raw["EnrollmentCount"]),
			ActualCount: intVal(raw["EnrollmentCountActual"]),
		},
		Dates: Dates{
			Start:              FormatDate(str(raw["StartDate"])),
			Completion:         FormatDate(str(raw["CompletionDate"])),
			PrimaryCompletion:  FormatDate(str(raw["PrimaryCompletionDate"])),
			LastUpdated:        FormatDate(str(raw["LastUpdatePostDate"])),
			FirstPosted:        FormatDate(str(raw["FirstPostedDate"])),
			ResultsFirstPosted: FormatDate(str(raw["ResultsFirstPostedDate"])),
			LastVerified:       FormatDate(str(raw["LastVerifiedDate"])),
		},
		Keywords:  list(raw["Keyword"]),
		MeshTerms: list(raw["MeshTerm"]),
		Interventions: Interventions{
			Name:        list(raw["InterventionName"]),
			Type:        list(raw["InterventionType"]),
			Description: list(raw["InterventionDescription"]),
		},
		Outcomes: Outcomes{
			Primary: OutcomeSet{
				Measure:     list(raw["PrimaryOutcomeMeasure"]),
				Description: list(raw["PrimaryOutcomeDescription"]),
				TimeFrame:   list(raw["PrimaryOutcomeTimeFrame"]),
			},
			Secondary: OutcomeSet{
				Measure:     list(raw["SecondaryOutcomeMeasure"]),
				Description: list(raw["SecondaryOutcomeDescription"]),
				TimeFrame:   list(raw["SecondaryOutcomeTimeFrame"]),
			},
			Other: OutcomeSet{
				Measure:     list(raw["OtherOutcomeMeasure"]),
				Description: list(raw["OtherOutcomeDescription"]),
				TimeFrame:   list(raw["OtherOutcomeTimeFrame"]),
			},
		},
		StudyDesign: StudyDesign{
			Allocation:                strOr(raw["StudyDesignAllocation"], notSpecified),
			InterventionModel:         strOr(raw["StudyDesignInterventionModel"], notSpecified),
			PrimaryPurpose:            strOr(raw["StudyDesignPrimaryPurpose"], notSpecified),
			Masking:                   strOr(raw["StudyDesignMasking"], notSpecified),
			MaskingDescription:        strOr(raw["StudyDesignMaskingDescription"], notSpecified),
			ObservationalModel:        strOr(raw["StudyDesignObservationalModel"], notSpecified),
			TimePerspective:           strOr(raw["StudyDesignTimePerspective"], notSpecified),
			BioSpecRetention:          strOr(raw["StudyDesignBioSpecRetention"], notSpecified),
			BioSpecDescription:        strOr(raw["StudyDesignBioSpecDescription"], notSpecified),
			SamplingMethod:            strOr(raw["StudyDesignSamplingMethod"], notSpecified),
			Population:                strOr(raw["StudyDesignPopulation"], notSpecified),
			StudyPopulation:           strOr(raw["StudyDesignStudyPopulation"], notSpecified),
			SamplingMethodDescription: strOr(raw["StudyDesignSamplingMethodDescription"], notSpecified),
		},
		StudyArms:  strOr(raw["StudyArms"], notSpecified),
		MatchScore: scorer(raw, now),
	}
}

// FormatAgeRange produces the most specific human-readable form the
// min/max pair allows.
func FormatAgeRange(minAge, maxAge string) string {
	minAge = strings.TrimSpace(minAge)
	maxAge = strings.TrimSpace(maxAge)
	switch {
	case minAge != "" && maxAge != "":
		return fmt.Sprintf("%s - %s years", minAge, maxAge)
	case minAge != "":
		return minAge + "+ years"
	case maxAge != "":
		return "Up to " + maxAge + " years"
	default:
		return notSpecified
	}
}

var dateLayouts = []string{"2006-01-02", "2006-01", "January 2, 2006", "January 2006", "2006"}

// FormatDate converts an ISO-ish date string to a short display form.
// Unparseable input passes through unchanged; empty input becomes the
// Not specified sentinel.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notSpecified
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// MatchScore is the default Scorer: base 50, +20 recruiting, +15 updated
// within 30 days (+10 within 90), +10 any Phase 3, +5 any US location,
// clamped to 100.
func MatchScore(raw map[string]any, now time.Time) int {
	score := 50

	if str(firstOf(raw, "Status", "OverallStatus")) == "Recruiting" {
		score += 20
	}

	if last := str(raw["LastUpdatePostDate"]); last != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, last); err == nil {
				days := now.Sub(t).Hours() / 24
				if days < 30 {
					score += 15
				} else if days < 90 {
					score += 10
				}
				break
			}
		}
	}

	for _, phase := range list(raw["Phase"]) {
		if strings.Contains(phase, "Phase 3") {
			score += 10
			break
		}
	}

	for _, country := range list(raw["LocationCountry"]) {
		lc := strings.ToLower(country)
		if strings.Contains(lc, "united states") || strings.Contains(lc, "us") {
			score += 5
			break
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// list is the normalize-to-list adapter: arrays are kept (non-string
// elements dropped), scalars become singletons, anything else is empty.
func list(v any) []string {
	switch vv := v.(type) {
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out
	case string:
		if vv == "" {
			return []string{}
		}
		return []string{vv}
	default:
		return []string{}
	}
}

// listOr substitutes a singleton sentinel when the field is absent.
func listOr(v any, def string) []string {
	out := list(v)
	if len(out) == 0 {
		return []string{def}
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strOr(v any, def string) string {
	if s := str(v); s != "" {
		return s
	}
	return def
}

func firstOf(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, isStr := v.(string); !isStr || s != "" {
				return v
			}
		}
	}
	return nil
}

func intVal(v any) int {
	switch vv := v.(type) {
	case float64:
		return int(vv)
	case int:
		return vv
	case string:
		n := 0
		_, _ = fmt.Sscanf(vv, "%d", &n)
		return n
	default:
		return 0
	}
}
