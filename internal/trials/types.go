package trials

// Trial is the normalized projection of an upstream registry record.
// Every list-typed field is always present (possibly empty) regardless of
// whether the upstream payload supplied a scalar, an array, or nothing.
type Trial struct {
	ID             string   `json:"id"`
	NCTID          string   `json:"nctId"`
	Title          string   `json:"title"`
	OfficialTitle  string   `json:"officialTitle"`
	Acronym        string   `json:"acronym,omitempty"`
	Condition      []string `json:"condition"`
	MeshConditions []string `json:"conditionMeshTerms"`
	Phase          []string `json:"phase"`
	Status         string   `json:"status"`
	StudyType      string   `json:"studyType"`

	Location    Location    `json:"location"`
	Sponsor     Sponsor     `json:"sponsor"`
	Description Description `json:"description"`
	Eligibility Eligibility `json:"eligibility"`
	Enrollment  Enrollment  `json:"enrollment"`
	Dates       Dates       `json:"dates"`

	Keywords  []string `json:"keywords"`
	MeshTerms []string `json:"meshTerms"`

	Interventions Interventions `json:"interventions"`
	Outcomes      Outcomes      `json:"outcomes"`
	StudyDesign   StudyDesign   `json:"studyDesign"`
	StudyArms     string        `json:"studyArms"`

	// MatchScore is a presentation convenience (see Scorer), not a
	// statistical ranking.
	MatchScore int `json:"matchScore"`

	// IsSaved is client-side presentation state.
	IsSaved bool `json:"isSaved"`
}

type Location struct {
	Country  []string `json:"country"`
	State    []string `json:"state"`
	City     []string `json:"city"`
	Facility []string `json:"facility"`
}

type Sponsor struct {
	Lead                string   `json:"lead"`
	LeadClass           string   `json:"leadClass"`
	Collaborators       []string `json:"collaborators"`
	CollaboratorClasses []string `json:"collaboratorClasses"`
}

type Description struct {
	Brief    string `json:"brief"`
	Detailed string `json:"detailed"`
}

type Eligibility struct {
	Criteria          string `json:"criteria"`
	AgeRange          string `json:"ageRange"`
	Sex               string `json:"sex"`
	HealthyVolunteers string `json:"healthyVolunteers"`
	StudyPopulation   string `json:"studyPopulation"`
	SamplingMethod    string `json:"samplingMethod"`
}

type Enrollment struct {
	Count       int `json:"count"`
	ActualCount int `json:"actualCount"`
}

type Dates struct {
	Start              string `json:"start"`
	Completion         string `json:"completion"`
	PrimaryCompletion  string `json:"primaryCompletion"`
	LastUpdated        string `json:"lastUpdated"`
	FirstPosted        string `json:"firstPosted"`
	ResultsFirstPosted string `json:"resultsFirstPosted"`
	LastVerified       string `json:"lastVerified"`
}

type Interventions struct {
	Name        []string `json:"name"`
	Type        []string `json:"type"`
	Description []string `json:"description"`
}

type OutcomeSet struct {
	Measure     []string `json:"measure"`
	Description []string `json:"description"`
	TimeFrame   []string `json:"timeFrame"`
}

type Outcomes struct {
	Primary   OutcomeSet `json:"primary"`
	Secondary OutcomeSet `json:"secondary"`
	Other     OutcomeSet `json:"other"`
}

type StudyDesign struct {
	Allocation                string `json:"allocation"`
	InterventionModel         string `json:"interventionModel"`
	PrimaryPurpose            string `json:"primaryPurpose"`
	Masking                   string `json:"masking"`
	MaskingDescription        string `json:"maskingDescription"`
	ObservationalModel        string `json:"observationalModel"`
	TimePerspective           string `json:"timePerspective"`
	BioSpecRetention          string `json:"bioSpecRetention"`
	BioSpecDescription        string `json:"bioSpecDescription"`
	SamplingMethod            string `json:"samplingMethod"`
	Population                string `json:"population"`
	StudyPopulation           string `json:"studyPopulation"`
	SamplingMethodDescription string `json:"samplingMethodDescription"`
}

// Result is one page of transformed search results.
type Result struct {
	Trials    []Trial `json:"trials"`
	Total     int     `json:"total"`
	PageToken string  `json:"pageToken,omitempty"`
	HasMore   bool    `json:"hasMore"`
}
