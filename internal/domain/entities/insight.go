package entities

import "strings"

// SentimentLabel is the overall tone of a meeting
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// ParseSentimentLabel matches s case-insensitively against the fixed label set
func ParseSentimentLabel(s string) (SentimentLabel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SentimentPositive, true
	case "negative":
		return SentimentNegative, true
	case "neutral":
		return SentimentNeutral, true
	}
	return "", false
}

// Sentiment is the parsed result of the sentiment task
type Sentiment struct {
	Label         SentimentLabel `json:"label"`
	Justification string         `json:"justification"`
}

// ActionItem is one follow-up task extracted from a transcript.
// Task keeps the model's markdown formatting; Owner is nil when no owner was named.
type ActionItem struct {
	Task  string  `json:"task"`
	Owner *string `json:"owner"`
}

// InsightBundle is the aggregate result of the four insight tasks for one transcript
type InsightBundle struct {
	Summary     string       `json:"summary"`
	Decisions   []string     `json:"decisions"`
	ActionItems []ActionItem `json:"action_items"`
	Sentiment   Sentiment    `json:"sentiment"`
}

// NewInsightBundle assembles a bundle, normalising nil lists to empty ones
func NewInsightBundle(summary string, decisions []string, actionItems []ActionItem, sentiment Sentiment) InsightBundle {
	if decisions == nil {
		decisions = make([]string, 0)
	}
	if actionItems == nil {
		actionItems = make([]ActionItem, 0)
	}
	return InsightBundle{
		Summary:     summary,
		Decisions:   decisions,
		ActionItems: actionItems,
		Sentiment:   sentiment,
	}
}

// AnswerResult pairs a question with the model's answer
type AnswerResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
