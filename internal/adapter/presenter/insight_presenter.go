package presenter

import (
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// ToInsightsResponse converts an InsightBundle to its response DTO.
// Lists are always rendered as arrays and a missing owner as null.
func ToInsightsResponse(b entities.InsightBundle) insight.InsightsResponse {
	decisions := make([]string, 0, len(b.Decisions))
	decisions = append(decisions, b.Decisions...)

	items := make([]insight.ActionItemResponse, 0, len(b.ActionItems))
	for _, item := range b.ActionItems {
		var owner *string
		if item.Owner != nil {
			o := *item.Owner
			owner = &o
		}
		items = append(items, insight.ActionItemResponse{Task: item.Task, Owner: owner})
	}

	return insight.InsightsResponse{
		Summary:     b.Summary,
		Decisions:   decisions,
		ActionItems: items,
		Sentiment: insight.SentimentResponse{
			Label:         string(b.Sentiment.Label),
			Justification: b.Sentiment.Justification,
		},
	}
}

// ToQnAResponse converts an AnswerResult to its response DTO
func ToQnAResponse(r entities.AnswerResult) insight.QnAResponse {
	return insight.QnAResponse{
		Question: r.Question,
		Answer:   r.Answer,
	}
}
