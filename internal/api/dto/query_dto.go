package dto

// QueryRequest payload for POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse carries the composed answer and the analysis behind it.
type QueryResponse struct {
	Answer        string   `json:"answer"`
	PrimaryIntent string   `json:"primary_intent"`
	Intents       []string `json:"intents"`
	Names         []string `json:"names"`
}
