package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/periodpain/pain-helper/internal/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recommendationsBody = `{
	"generated_at": "2026-08-30T12:00:00",
	"recommendations": {
		"mind_body": [
			{"name": "Breathing exercise", "description": "Slow diaphragmatic breathing", "type": "relaxation", "evidence_level": "moderate", "effectiveness": 0.7, "confidence": 0.8, "explanation": "Lowers perceived pain intensity"}
		],
		"cycle_support": [
			{"name": "Heat therapy", "description": "Apply a heating pad", "type": "physical", "evidence_level": "strong", "effectiveness": 0.85, "confidence": 0.9, "explanation": "Relaxes uterine muscle"},
			{"name": "Gentle stretching", "description": "Light yoga poses", "type": "physical", "evidence_level": "moderate", "effectiveness": 0.6, "confidence": 0.7, "explanation": "Improves circulation"}
		],
		"hydration": [
			{"name": "Water intake", "description": "Drink 2L through the day", "type": "lifestyle", "evidence_level": "weak", "effectiveness": 0.4, "confidence": 0.5, "explanation": "Reduces bloating"}
		]
	}
}`

func recommendationServer(t *testing.T, feedback *url.Values) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recommendations":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(recommendationsBody))
		case "/feedback":
			*feedback = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status": "ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestGetRecommendationsKeepsCategoryOrder(t *testing.T) {
	var feedback url.Values
	server := recommendationServer(t, &feedback)
	defer server.Close()

	svc := NewRecommendationService(apiclient.NewClient(server.URL))

	envelope, err := svc.GetRecommendations(context.Background(), 1, "user_abcdef123")
	require.NoError(t, err)
	require.Len(t, envelope.Recommendations, 3)
	assert.Equal(t, "mind_body", envelope.Recommendations[0].Category)
	assert.Equal(t, "cycle_support", envelope.Recommendations[1].Category)
	assert.Equal(t, "hydration", envelope.Recommendations[2].Category)
	assert.Equal(t, envelope, svc.Latest(1))
}

func TestItemResolvesByPosition(t *testing.T) {
	var feedback url.Values
	server := recommendationServer(t, &feedback)
	defer server.Close()

	svc := NewRecommendationService(apiclient.NewClient(server.URL))
	_, err := svc.GetRecommendations(context.Background(), 1, "user_abcdef123")
	require.NoError(t, err)

	item, ok := svc.Item(1, 1, 1)
	require.True(t, ok)
	assert.Equal(t, "Gentle stretching", item.Name)

	_, ok = svc.Item(1, 3, 0)
	assert.False(t, ok)
	_, ok = svc.Item(1, 0, 5)
	assert.False(t, ok)
	_, ok = svc.Item(2, 0, 0) // no fetch for this installation yet
	assert.False(t, ok)
}

func TestSubmitFeedbackScoreMapping(t *testing.T) {
	var feedback url.Values
	server := recommendationServer(t, &feedback)
	defer server.Close()

	svc := NewRecommendationService(apiclient.NewClient(server.URL))
	ctx := context.Background()

	require.NoError(t, svc.SubmitFeedback(ctx, "user_abcdef123", "Heat therapy", true))
	assert.Equal(t, "user_abcdef123", feedback.Get("user_id"))
	assert.Equal(t, "Heat therapy", feedback.Get("recommendation_type"))
	assert.Equal(t, "5", feedback.Get("helpfulness_score"))

	require.NoError(t, svc.SubmitFeedback(ctx, "user_abcdef123", "Heat therapy", false))
	assert.Equal(t, "2", feedback.Get("helpfulness_score"))
}

func TestSubmitFeedbackFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewRecommendationService(apiclient.NewClient(server.URL))
	err := svc.SubmitFeedback(context.Background(), "user_abcdef123", "Heat therapy", true)
	require.Error(t, err)
}
