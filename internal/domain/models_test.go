package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationGroupsPreserveServerOrder(t *testing.T) {
	// Deliberately not alphabetical: the server's order must survive.
	payload := `{
		"generated_at": "2026-02-01T10:00:00",
		"recommendations": {
			"mind_body": [{"name": "breathing_exercise", "description": "Deep breathing for 5 minutes"}],
			"cycle_support": [
				{"name": "heat_pad", "description": "Apply heat pad", "evidence_level": "high", "effectiveness": 0.4},
				{"name": "rest", "description": "Take a rest break"}
			],
			"hydration": [{"name": "hydration", "description": "Drink 500ml of water"}]
		}
	}`

	var envelope RecommendationEnvelope
	require.NoError(t, json.Unmarshal([]byte(payload), &envelope))

	require.Len(t, envelope.Recommendations, 3)
	assert.Equal(t, "mind_body", envelope.Recommendations[0].Category)
	assert.Equal(t, "cycle_support", envelope.Recommendations[1].Category)
	assert.Equal(t, "hydration", envelope.Recommendations[2].Category)

	items := envelope.Recommendations[1].Items
	require.Len(t, items, 2)
	assert.Equal(t, "heat_pad", items[0].Name)
	assert.Equal(t, "high", items[0].EvidenceLevel)
	assert.InDelta(t, 0.4, items[0].Effectiveness, 1e-9)
	assert.Equal(t, "rest", items[1].Name)
}

func TestRecommendationGroupsRejectNonObject(t *testing.T) {
	var groups RecommendationGroups
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &groups))
}

func TestPredictionDayAbsentMetrics(t *testing.T) {
	payload := `{"date": "2026-02-02", "predicted_pain_score": 6.5, "confidence": 0.8}`

	var day PredictionDay
	require.NoError(t, json.Unmarshal([]byte(payload), &day))

	require.NotNil(t, day.PredictedPainScore)
	assert.InDelta(t, 6.5, *day.PredictedPainScore, 1e-9)
	assert.Nil(t, day.PredictedStress)
	require.NotNil(t, day.Confidence)
}
