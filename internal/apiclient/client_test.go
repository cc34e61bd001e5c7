package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/periodpain/pain-helper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPainHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pain/user_abc123def", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"entries": [
			{"date": "2026-02-03T09:00:00", "pain_score": 7, "pain_type": "cramps", "productivity_impact": 5, "notes": "bad day"},
			{"date": "2026-02-02T09:00:00", "pain_score": 3, "pain_type": "headache", "productivity_impact": 2}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/v1")
	entries, err := client.ListPainHistory(context.Background(), "user_abc123def", 30)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 7, entries[0].PainScore)
	assert.Equal(t, domain.PainTypeCramps, entries[0].PainType)
	assert.Equal(t, "bad day", entries[0].Notes)
	// Server order is kept even though scores are not sorted.
	assert.Equal(t, 3, entries[1].PainScore)
}

func TestCreatePainEntrySendsIdempotencyKey(t *testing.T) {
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/pain", r.URL.Path)
		assert.Equal(t, "user_abc123def", r.URL.Query().Get("user_id"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		keys = append(keys, r.Header.Get("Idempotency-Key"))

		var body domain.PainEntryInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 8, body.PainScore)

		w.Write([]byte(`{"entry_id": "abc123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/v1")
	entry := domain.PainEntryInput{PainScore: 8, PainType: domain.PainTypeCramps, ProductivityImpact: 6}

	id, err := client.CreatePainEntry(context.Background(), "user_abc123def", entry)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = client.CreatePainEntry(context.Background(), "user_abc123def", entry)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1], "each attempt gets a fresh idempotency key")
}

func TestCreateLifestyleEntryNumericID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/lifestyle", r.URL.Path)
		w.Write([]byte(`{"entry_id": 42}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/v1")
	id, err := client.CreateLifestyleEntry(context.Background(), "user_abc123def", domain.LifestyleEntryInput{
		SleepHours: 7.5, ExerciseMinutes: 30, StressLevel: 4, HydrationLiters: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestRemoteErrorCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Days must be between 1 and 14"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/v1")
	_, err := client.GetPredictions(context.Background(), "user_abc123def", 7)
	require.Error(t, err)

	remote, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Equal(t, "Days must be between 1 and 14", remote.Message)
}

func TestRemoteErrorFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/v1")
	err := client.SubmitFeedback(context.Background(), "user_abc123def", "heat_pad", 5)
	require.Error(t, err)

	remote, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
	assert.NotEmpty(t, remote.Message)
}

func TestTransportErrorIsNotRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(server.URL + "/api/v1")
	_, err := client.ListPainHistory(context.Background(), "user_abc123def", 30)
	require.Error(t, err)

	_, ok := AsRemoteError(err)
	assert.False(t, ok, "a transport failure must not masquerade as a backend response")
}

func TestSubmitFeedbackQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/feedback", r.URL.Path)
		assert.Equal(t, "user_abc123def", r.URL.Query().Get("user_id"))
		assert.Equal(t, "heat_pad", r.URL.Query().Get("recommendation_type"))
		assert.Equal(t, "5", r.URL.Query().Get("helpfulness_score"))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/v1")
	require.NoError(t, client.SubmitFeedback(context.Background(), "user_abc123def", "heat_pad", 5))
}
