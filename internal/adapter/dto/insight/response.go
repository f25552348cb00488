package insight

// ActionItemResponse is one extracted action item; owner is null when nobody was named
type ActionItemResponse struct {
	Task  string  `json:"task" yaml:"task"`
	Owner *string `json:"owner" yaml:"owner"`
}

// SentimentResponse is the overall tone of the meeting
type SentimentResponse struct {
	Label         string `json:"label" yaml:"label" enums:"Positive,Negative,Neutral"`
	Justification string `json:"justification" yaml:"justification"`
}

// InsightsResponse is the body returned by POST /v1/insights
type InsightsResponse struct {
	Summary     string               `json:"summary" yaml:"summary"`
	Decisions   []string             `json:"decisions" yaml:"decisions"`
	ActionItems []ActionItemResponse `json:"action_items" yaml:"action_items"`
	Sentiment   SentimentResponse    `json:"sentiment" yaml:"sentiment"`
}

// QnAResponse is the body returned by POST /v1/qna
type QnAResponse struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Kind    string `json:"kind" yaml:"kind" example:"EmptyTranscript"`
	Message string `json:"message" yaml:"message" example:"Transcript must not be empty"`
}

// ErrorResponse wraps every error returned by the API
type ErrorResponse struct {
	Error ErrorBody `json:"error" yaml:"error"`
}

// HealthResponse reports liveness and the capabilities this process serves
type HealthResponse struct {
	Status       string   `json:"status" yaml:"status" example:"ok"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
}
