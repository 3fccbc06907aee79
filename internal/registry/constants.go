package registry

import "time"

const (
	DefaultBaseURL          = "https://clinicaltrials.gov/api/v2"
	DefaultRateLimitPerHour = 1000
	DefaultCacheTTL         = time.Hour
	DefaultTimeout          = 10 * time.Second
	DefaultPageSize         = 10

	studiesEndpoint = "studies"

	userAgent = "UnityTrials/1.0 (Clinical Trial Matching Platform)"

	// Sent as query.term when no filter contributed any term, so a
	// request is never issued with an empty query.
	defaultSearchTerm = "clinical trial"
)

// essentialFields keeps list responses small; detail lookups request the
// exhaustive set below instead.
const essentialFields = "NCTId,BriefTitle,Condition,OverallStatus,LocationCountry,LocationState,LeadSponsorName"

var detailFields = []string{
	"NCTId", "BriefTitle", "OfficialTitle", "Acronym", "Condition", "ConditionMeshTerm",
	"Phase", "OverallStatus", "StudyType", "EnrollmentCount", "EnrollmentCountActual",
	"LocationCountry", "LocationState", "LocationCity", "LocationFacility",
	"LeadSponsorName", "LeadSponsorClass", "CollaboratorName", "CollaboratorClass",
	"BriefSummary", "DetailedDescription", "EligibilityCriteria", "MinimumAge",
	"MaximumAge", "Sex", "HealthyVolunteers", "StudyPopulation", "SamplingMethod",
	"StartDate", "CompletionDate", "PrimaryCompletionDate", "LastUpdatePostDate",
	"FirstPostedDate", "ResultsFirstPostedDate", "LastVerifiedDate",
	"Keyword", "MeshTerm", "InterventionName", "InterventionType", "InterventionDescription",
	"PrimaryOutcomeMeasure", "PrimaryOutcomeDescription", "PrimaryOutcomeTimeFrame",
	"SecondaryOutcomeMeasure", "SecondaryOutcomeDescription", "SecondaryOutcomeTimeFrame",
	"OtherOutcomeMeasure", "OtherOutcomeDescription", "OtherOutcomeTimeFrame",
	"StudyArms", "StudyDesignInfo", "StudyDesignAllocation", "StudyDesignInterventionModel",
	"StudyDesignPrimaryPurpose", "StudyDesignMasking", "StudyDesignMaskingDescription",
	"StudyDesignObservationalModel", "StudyDesignTimePerspective", "StudyDesignBioSpecRetention",
	"StudyDesignBioSpecDescription", "StudyDesignSamplingMethod", "StudyDesignPopulation",
	"StudyDesignStudyPopulation", "StudyDesignSamplingMethodDescription",
}
