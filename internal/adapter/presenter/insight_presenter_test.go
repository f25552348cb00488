package presenter

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestToInsightsResponse_RendersEmptyListsAndNullOwner(t *testing.T) {
	bundle := entities.InsightBundle{
		Summary:   "Quick sync.",
		Sentiment: entities.Sentiment{Label: entities.SentimentNeutral, Justification: "Routine."},
	}

	b, err := json.Marshal(ToInsightsResponse(bundle))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	assert.Equal(t, `{"summary":"Quick sync.","decisions":[],"action_items":[],"sentiment":{"label":"Neutral","justification":"Routine."}}`, string(b))

	owner := "Bob"
	bundle.ActionItems = []entities.ActionItem{{Task: "Prepare plan", Owner: &owner}, {Task: "Book room"}}
	b, err = json.Marshal(ToInsightsResponse(bundle).ActionItems)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	assert.Equal(t, `[{"task":"Prepare plan","owner":"Bob"},{"task":"Book room","owner":null}]`, string(b))
}
