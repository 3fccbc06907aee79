// Package chatbot routes chat messages to the right handler: platform
// FAQ answers, trial search, canned informational replies, or a language
// model for everything else. Every path returns a usable Response; the
// router never surfaces an error to the user.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/unitytrials/trialmatch/internal/comprehend"
	"github.com/unitytrials/trialmatch/internal/errclass"
	"github.com/unitytrials/trialmatch/internal/registry"
	"github.com/unitytrials/trialmatch/internal/trials"
)

const (
	IntentGreeting     = "greeting"
	IntentSearch       = "search"
	IntentInformation  = "information"
	IntentHelp         = "help"
	IntentWebsite      = "website"
	IntentTrialDetails = "trial_details"
	IntentGeneral      = "general"
)

const chatSearchLimit = 5

type QuickAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Icon   string `json:"icon"`
}

type Response struct {
	Message      string         `json:"message"`
	Intent       string         `json:"intent"`
	Trials       []trials.Trial `json:"trials,omitempty"`
	Suggestions  []string       `json:"suggestions,omitempty"`
	QuickActions []QuickAction  `json:"quickActions,omitempty"`
	Confidence   float64        `json:"confidence,omitempty"`
}

// Searcher is the slice of the trial service the router needs.
type Searcher interface {
	SearchUSA(ctx context.Context, q registry.Query) (trials.Result, error)
}

// Generator produces free-form completions; nil disables the model paths.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Router struct {
	searcher Searcher
	gen      Generator
	log      zerolog.Logger
}

func NewRouter(searcher Searcher, gen Generator, log zerolog.Logger) *Router {
	return &Router{searcher: searcher, gen: gen, log: log}
}

// Process answers a single chat message. The precedence is fixed:
// platform FAQ, then trial-specific questions, then intent routing.
func (r *Router) Process(ctx context.Context, message string) Response {
	lower := strings.ToLower(message)

	if answer := AnswerWebsiteQuestion(message); answer != "" {
		return Response{
			Message:    answer,
			Intent:     IntentWebsite,
			Confidence: 0.9,
			Suggestions: []string{
				"How do I find trials?",
				"What is UnityTrials?",
				"How do I contact support?",
				"Tell me about the co-founders",
			},
			QuickActions: []QuickAction{
				{Label: "Find Trials", Action: "find clinical trials", Icon: "Search"},
				{Label: "About Us", Action: "tell me about UnityTrials", Icon: "Info"},
				{Label: "Contact Support", Action: "how do I contact support", Icon: "Shield"},
			},
		}
	}

	if isTrialSpecificQuestion(lower) {
		return trialDetailsResponse()
	}

	switch r.detectIntent(ctx, lower) {
	case IntentGreeting:
		return greetingResponse()
	case IntentSearch:
		return r.handleSearch(ctx, message)
	case IntentInformation:
		return informationResponse(lower)
	case IntentHelp:
		return helpResponse()
	default:
		return r.handleGeneral(ctx, message)
	}
}

// detectIntent asks the generator to classify first and falls back to the
// keyword rules when the model is absent, fails, or answers off-menu.
func (r *Router) detectIntent(ctx context.Context, lower string) string {
	if r.gen != nil {
		prompt := fmt.Sprintf(`Analyze this message and classify the intent. Choose from: search, information, help, greeting, general.

Message: %q

Rules:
- "search": User wants to find clinical trials or medical studies
- "information": User asks about medical conditions, trial phases, or general medical info
- "help": User needs assistance or asks "how to" questions
- "greeting": Hello, hi, hey, etc.
- "general": Everything else

Respond with only the intent type:`, lower)
		out, err := r.gen.Generate(ctx, prompt)
		if err == nil {
			intent := strings.ToLower(strings.TrimSpace(out))
			switch intent {
			case IntentSearch, IntentInformation, IntentHelp, IntentGreeting, IntentGeneral:
				return intent
			}
		} else {
			r.log.Debug().Err(err).Msg("model intent detection failed, using rules")
		}
	}
	return ruleIntent(lower)
}

func ruleIntent(lower string) string {
	switch {
	case isGreeting(lower):
		return IntentGreeting
	case isSearchQuery(lower):
		return IntentSearch
	case isInformationRequest(lower):
		return IntentInformation
	case isHelpRequest(lower):
		return IntentHelp
	default:
		return IntentSearch
	}
}

func isGreeting(lower string) bool {
	for _, g := range []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"} {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}

func isSearchQuery(lower string) bool {
	for _, t := range []string{"find", "search", "look for", "trials for", "studies for", "research for"} {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return comprehend.MentionsCondition(lower)
}

func isInformationRequest(lower string) bool {
	for _, t := range []string{"what is", "how does", "explain", "tell me about", "information about"} {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func isHelpRequest(lower string) bool {
	for _, t := range []string{"help", "assist", "guide", "how to"} {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// isTrialSpecificQuestion matches questions about a particular study.
// Generic facet words like "phase" or "location" are deliberately left
// out so they keep routing to search.
func isTrialSpecificQuestion(lower string) bool {
	for _, kw := range []string{"nct", "trial details", "study details", "eligibility", "intervention", "outcome", "sponsor", "enrollment"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (r *Router) handleSearch(ctx context.Context, message string) Response {
	f := comprehend.ComprehendWithGenerator(ctx, r.gen, r.log, message)
	f.Condition = comprehend.NormalizeCondition(f.Condition)
	if f.Empty() {
		return clarifyResponse()
	}

	result, err := r.searcher.SearchUSA(ctx, registry.Query{
		Condition: f.Condition,
		Phase:     f.Phase,
		Location:  f.Location,
		Status:    "Recruiting",
		Limit:     chatSearchLimit,
	})
	if err != nil {
		classified := errclass.Classify(err)
		r.log.Warn().Err(err).Str("kind", classified.Kind).Msg("chat search failed, serving fallback trials")
		msg := classified.UserMessage
		if classified.Retryable && classified.RetryAfter > 0 {
			msg += " " + errclass.RetryMessage(classified.RetryAfter)
		}
		return Response{
			Message:    msg + " In the meantime, here are some representative studies.",
			Intent:     IntentSearch,
			Trials:     errclass.FallbackTrials(message),
			Confidence: 0.5,
		}
	}

	return Response{
		Message:    searchMessage(f),
		Intent:     IntentSearch,
		Trials:     result.Trials,
		Confidence: 0.9,
		Suggestions: []string{
			"Show me Phase III trials only",
			"Find trials near me",
			"What are the requirements?",
			"How do I apply?",
		},
		QuickActions: []QuickAction{
			{Label: "Cancer Trials", Action: "find cancer trials", Icon: "Heart"},
			{Label: "Diabetes Studies", Action: "find diabetes trials", Icon: "Target"},
			{Label: "Phase III Trials", Action: "find phase 3 trials", Icon: "Search"},
			{Label: "Mental Health", Action: "find mental health trials", Icon: "Brain"},
		},
	}
}

func searchMessage(f comprehend.Filters) string {
	var query string
	if f.Condition != "" {
		query += f.Condition
	}
	if f.Phase != "" {
		query += " " + f.Phase
	}
	if f.Location != "" {
		query += " in " + f.Location
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "I'll search for clinical trials in the United States. Let me find the most relevant studies for you."
	}
	return fmt.Sprintf("I'll search for clinical trials related to %s in the United States. Let me find the most relevant studies for you.", query)
}

func (r *Router) handleGeneral(ctx context.Context, message string) Response {
	if r.gen != nil {
		out, err := r.gen.Generate(ctx, message)
		if err == nil && strings.TrimSpace(out) != "" {
			return Response{
				Message:    strings.TrimSpace(out),
				Intent:     IntentGeneral,
				Confidence: 0.7,
				Suggestions: []string{
					"What is UnityTrials?",
					"How do I find clinical trials?",
					"Tell me about the co-founders",
					"What are the different trial phases?",
				},
				QuickActions: []QuickAction{
					{Label: "About UnityTrials", Action: "what is UnityTrials", Icon: "Info"},
					{Label: "Find Trials", Action: "find clinical trials", Icon: "Search"},
					{Label: "Trial Phases", Action: "what are trial phases", Icon: "Target"},
					{Label: "Contact Support", Action: "how do I contact support", Icon: "Shield"},
				},
			}
		}
		if err != nil {
			r.log.Debug().Err(err).Msg("model general answer failed, using canned reply")
		}
	}
	return Response{
		Message:    "I'm here to help you with clinical trials and general questions! I can search for trials, answer questions about UnityTrials, and engage in conversations. What would you like to know?",
		Intent:     IntentGeneral,
		Confidence: 0.5,
		Suggestions: []string{
			"What is UnityTrials?",
			"Find cancer trials",
			"How do I use this chatbot?",
			"Tell me about clinical trials",
		},
	}
}

func greetingResponse() Response {
	return Response{
		Message:    "Hello! I'm Unity AI, your clinical trial finder. I can help you discover studies that match your medical condition, location, and preferences. What type of clinical trial are you looking for?",
		Intent:     IntentGreeting,
		Confidence: 0.9,
		QuickActions: []QuickAction{
			{Label: "Find Cancer Trials", Action: "cancer trials", Icon: "Heart"},
			{Label: "Diabetes Studies", Action: "diabetes research", Icon: "Target"},
			{Label: "Heart Disease", Action: "cardiovascular trials", Icon: "Heart"},
			{Label: "Browse All Categories", Action: "show all categories", Icon: "Search"},
		},
	}
}

func clarifyResponse() Response {
	return Response{
		Message:    "I understand you're looking for clinical trials, but I need more specific information. Could you please tell me what medical condition you're interested in? For example: 'diabetes', 'cancer', 'depression', 'heart disease', etc.",
		Intent:     IntentSearch,
		Confidence: 0.6,
		Suggestions: []string{
			"Find diabetes trials",
			"Search for cancer studies",
			"Mental health trials",
			"Cardiovascular studies",
		},
		QuickActions: []QuickAction{
			{Label: "Diabetes", Action: "find diabetes trials", Icon: "Target"},
			{Label: "Cancer", Action: "find cancer trials", Icon: "Heart"},
			{Label: "Mental Health", Action: "find mental health trials", Icon: "Brain"},
			{Label: "Heart Disease", Action: "find cardiovascular trials", Icon: "Heart"},
		},
	}
}

func trialDetailsResponse() Response {
	return Response{
		Message:    "I can help you find detailed information about specific clinical trials. Please provide the NCT ID or describe the trial you're looking for, and I'll search for comprehensive details including eligibility criteria, interventions, outcomes, and study design.",
		Intent:     IntentTrialDetails,
		Confidence: 0.8,
		Suggestions: []string{
			"Search for cancer trials",
			"Find diabetes studies",
			"Show me Phase III trials",
			"What are the eligibility requirements?",
		},
		QuickActions: []QuickAction{
			{Label: "Cancer Trials", Action: "find cancer trials", Icon: "Heart"},
			{Label: "Diabetes Studies", Action: "find diabetes trials", Icon: "Target"},
			{Label: "Phase III Trials", Action: "find phase 3 trials", Icon: "Search"},
		},
	}
}

func informationResponse(lower string) Response {
	if strings.Contains(lower, "clinical trial") || strings.Contains(lower, "research study") {
		return Response{
			Message:    "Clinical trials are research studies that test new medical treatments, drugs, or devices to determine their safety and effectiveness. They're essential for advancing medical knowledge and developing new therapies. Would you like to learn about a specific type of trial or find studies in your area?",
			Intent:     IntentInformation,
			Confidence: 0.8,
			QuickActions: []QuickAction{
				{Label: "Learn About Phases", Action: "explain trial phases", Icon: "Target"},
				{Label: "Safety Information", Action: "trial safety", Icon: "Shield"},
				{Label: "Find Trials", Action: "search trials", Icon: "Search"},
			},
		}
	}
	return Response{
		Message:    "I'd be happy to provide information about clinical trials and research studies. What specific aspect would you like to learn more about?",
		Intent:     IntentInformation,
		Confidence: 0.7,
		Suggestions: []string{
			"What are clinical trials?",
			"How do trial phases work?",
			"Are trials safe?",
			"How do I participate?",
		},
	}
}

func helpResponse() Response {
	return Response{
		Message:    "I'm here to help you find clinical trials in the United States! You can ask me to search for trials by condition (like 'cancer' or 'diabetes'), location, or phase. I can also explain how clinical trials work and help you understand the process.",
		Intent:     IntentHelp,
		Confidence: 0.8,
		QuickActions: []QuickAction{
			{Label: "Search by Condition", Action: "search by condition", Icon: "Search"},
			{Label: "Find by Location", Action: "search by location", Icon: "MapPin"},
			{Label: "Learn About Trials", Action: "explain trials", Icon: "Info"},
			{Label: "Get Started", Action: "start search", Icon: "Play"},
		},
	}
}
