package comprehend

// Keyword tables for the fast extraction path. Matching is
// case-insensitive substring containment; the first hit per category wins.

var conditionKeywords = map[string][]string{
	"cancer":        {"cancer", "tumor", "oncology", "malignant", "carcinoma", "leukemia", "lymphoma"},
	"diabetes":      {"diabetes", "diabetic", "blood sugar", "glucose", "insulin"},
	"heart":         {"heart", "cardiac", "cardiovascular", "hypertension", "blood pressure"},
	"mental health": {"depression", "anxiety", "bipolar", "schizophrenia", "mental health", "psychiatric"},
	"autoimmune":    {"rheumatoid arthritis", "lupus", "multiple sclerosis", "autoimmune"},
	"respiratory":   {"asthma", "copd", "lung", "respiratory", "breathing"},
	"neurological":  {"alzheimer", "parkinson", "stroke", "neurological", "brain"},
	"pediatric":     {"pediatric", "children", "kids", "child", "infant"},
}

var phaseKeywords = map[string][]string{
	"phase 1": {"phase 1", "phase i", "early phase", "safety"},
	"phase 2": {"phase 2", "phase ii", "efficacy"},
	"phase 3": {"phase 3", "phase iii", "large scale", "confirmatory"},
	"phase 4": {"phase 4", "phase iv", "post marketing", "surveillance"},
}

var locationKeywords = map[string][]string{
	"new york":     {"new york", "nyc", "manhattan", "brooklyn"},
	"california":   {"california", "los angeles", "san francisco", "san diego"},
	"texas":        {"texas", "houston", "dallas", "austin"},
	"florida":      {"florida", "miami", "orlando", "tampa"},
	"illinois":     {"illinois", "chicago"},
	"pennsylvania": {"pennsylvania", "philadelphia", "pittsburgh"},
}

// conditionSynonyms maps informal or truncated user input to the
// controlled search vocabulary. Entries mapping to "" mean the input
// carries no usable condition at all.
var conditionSynonyms = map[string]string{
	"show all categories":   "",
	"what else":             "",
	"diabetes research":     "diabetes",
	"cancer trials":         "cancer",
	"cardiovascular trials": "cardiovascular",
	"mental health trials":  "mental health",
	"pediatric trials":      "pediatric",
	"rare disease trials":   "rare disease",
	"vaccine trials":        "vaccine",
	"drug trials":           "drug",
	"treatment trials":      "treatment",
	"depress":               "depression",
	"heart":                 "cardiovascular",
	"lung":                  "respiratory",
	"brain":                 "neurological",
	"kidney":                "renal",
	"liver":                 "hepatic",
	"bone":                  "orthopedic",
	"skin":                  "dermatological",
	"eye":                   "ophthalmological",
	"stomach":               "gastrointestinal",
	"intestine":             "gastrointestinal",
	"blood":                 "hematological",
	"immune":                "immunological",
	"hormone":               "endocrinological",
	"thyroid":               "endocrinological",
	"tumor":                 "cancer",
	"leukemia":              "cancer",
	"lymphoma":              "cancer",
	"melanoma":              "cancer",
	"breast":                "breast cancer",
	"prostate":              "prostate cancer",
	"colon":                 "colorectal cancer",
	"ovarian":               "ovarian cancer",
	"pancreatic":            "pancreatic cancer",
}

// validMedicalTerms gates conditions before they reach the registry as a
// literal search term; anything that neither contains nor is contained by
// one of these is discarded.
var validMedicalTerms = []string{
	"diabetes", "cancer", "depression", "anxiety", "cardiovascular", "respiratory",
	"neurological", "renal", "hepatic", "orthopedic", "dermatological", "ophthalmological",
	"gastrointestinal", "hematological", "immunological", "endocrinological",
	"breast", "prostate", "lung", "colon", "ovarian", "pancreatic", "liver", "brain",
	"bone", "skin", "eye", "blood", "immune", "hormone", "thyroid", "mental health",
	"pediatric", "rare disease", "vaccine", "drug", "treatment", "therapy", "medication",
	"surgery", "radiation", "chemotherapy", "immunotherapy", "targeted therapy",
	"gene therapy", "stem cell", "transplant", "vaccination", "prevention", "screening",
	"diagnosis", "monitoring", "rehabilitation", "palliative", "hospice",
	"asthma", "copd", "lupus", "multiple sclerosis", "rheumatoid arthritis",
	"alzheimer", "parkinson", "stroke", "hypertension", "autoimmune",
}
