package domain

// Intent is a semantic category describing what a query asks about.
type Intent string

const (
	IntentEmployeeLookup  Intent = "employee_lookup"
	IntentSalaryInquiry   Intent = "salary_inquiry"
	IntentLeavePolicy     Intent = "leave_policy"
	IntentTravelPolicy    Intent = "travel_policy"
	IntentTeamInquiry     Intent = "team_inquiry"
	IntentLocationInquiry Intent = "location_inquiry"
	IntentBandInquiry     Intent = "band_inquiry"
	IntentGeneralInfo     Intent = "general_info"
	IntentListAll         Intent = "list_all"
	IntentStatistics      Intent = "statistics"
)

// QueryAnalysis is the classifier output for a single query.
type QueryAnalysis struct {
	PrimaryIntent  Intent   `json:"primary_intent"`
	AllIntents     []Intent `json:"all_intents"`
	ExtractedNames []string `json:"extracted_names"`
}

