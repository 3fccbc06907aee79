package errclass

import (
	"strings"

	"github.com/unitytrials/trialmatch/internal/trials"
)

// fallbackTrials are representative recruiting studies shown when the
// registry is unreachable, so a degraded page is never empty.
var fallbackTrials = []trials.Trial{
	{
		ID:        "NCT12345678",
		NCTID:     "NCT12345678",
		Title:     "Type 2 Diabetes Management Study",
		Condition: []string{"Type 2 Diabetes"},
		Phase:     []string{"Phase 3"},
		Status:    "Recruiting",
		StudyType: "Interventional",
		Location: trials.Location{
			Country:  []string{"United States"},
			State:    []string{"California"},
			City:     []string{"Los Angeles"},
			Facility: []string{"UCLA Medical Center"},
		},
		Sponsor: trials.Sponsor{Lead: "National Institute of Diabetes"},
		Description: trials.Description{
			Brief: "A study evaluating a new combination therapy for adults with type 2 diabetes.",
		},
		Eligibility: trials.Eligibility{AgeRange: "18 - 75 years", Sex: "All"},
		MatchScore:  85,
	},
	{
		ID:        "NCT87654321",
		NCTID:     "NCT87654321",
		Title:     "Immunotherapy for Advanced Solid Tumors",
		Condition: []string{"Cancer"},
		Phase:     []string{"Phase 2"},
		Status:    "Recruiting",
		StudyType: "Interventional",
		Location: trials.Location{
			Country:  []string{"United States"},
			State:    []string{"New York"},
			City:     []string{"New York"},
			Facility: []string{"Memorial Sloan Kettering Cancer Center"},
		},
		Sponsor: trials.Sponsor{Lead: "National Cancer Institute"},
		Description: trials.Description{
			Brief: "Evaluating checkpoint inhibitor therapy in patients with advanced solid tumors.",
		},
		Eligibility: trials.Eligibility{AgeRange: "18+ years", Sex: "All"},
		MatchScore:  80,
	},
	{
		ID:        "NCT11223344",
		NCTID:     "NCT11223344",
		Title:     "Heart Failure Prevention Trial",
		Condition: []string{"Cardiovascular Disease"},
		Phase:     []string{"Phase 3"},
		Status:    "Recruiting",
		StudyType: "Interventional",
		Location: trials.Location{
			Country:  []string{"United States"},
			State:    []string{"Texas"},
			City:     []string{"Houston"},
			Facility: []string{"Texas Heart Institute"},
		},
		Sponsor: trials.Sponsor{Lead: "American Heart Association"},
		Description: trials.Description{
			Brief: "A preventive intervention study for patients at high risk of heart failure.",
		},
		Eligibility: trials.Eligibility{AgeRange: "40 - 80 years", Sex: "All"},
		MatchScore:  75,
	},
}

// FallbackTrials returns canned trials matching the search text. A text
// mentioning cancer, diabetes, or heart narrows the set to the matching
// study; anything else gets all three.
func FallbackTrials(searchContext string) []trials.Trial {
	lower := strings.ToLower(searchContext)
	var out []trials.Trial
	switch {
	case strings.Contains(lower, "diabetes"):
		out = append(out, fallbackTrials[0])
	case strings.Contains(lower, "cancer"), strings.Contains(lower, "tumor"), strings.Contains(lower, "oncology"):
		out = append(out, fallbackTrials[1])
	case strings.Contains(lower, "heart"), strings.Contains(lower, "cardiac"), strings.Contains(lower, "cardiovascular"):
		out = append(out, fallbackTrials[2])
	default:
		out = append(out, fallbackTrials...)
	}
	return out
}
