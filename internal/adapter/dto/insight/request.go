package insight

// InsightsRequest is the body of POST /v1/insights
type InsightsRequest struct {
	Transcript string `json:"transcript" validate:"notblank" example:"Alice: Let's launch next Monday. Bob: I'll prepare the rollout plan by Friday."`
}

// QnARequest is the body of POST /v1/qna
type QnARequest struct {
	Transcript string `json:"transcript" validate:"notblank" example:"Alice: Let's launch next Monday. Bob: I'll prepare the rollout plan by Friday."`
	Question   string `json:"question" validate:"notblank" example:"Who is preparing the rollout plan?"`
}
