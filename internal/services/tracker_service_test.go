package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/periodpain/pain-helper/internal/apiclient"
	"github.com/periodpain/pain-helper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func painInput() domain.PainEntryInput {
	return domain.PainEntryInput{
		PainScore:          7,
		PainType:           domain.PainTypeCramps,
		ProductivityImpact: 4,
		Notes:              "afternoon flare",
	}
}

func TestSubmitPainEntrySuccessNotice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"entry_id": "abc123"}`))
	}))
	defer server.Close()

	svc := NewTrackerService(apiclient.NewClient(server.URL))
	svc.noticeTTL = 50 * time.Millisecond

	entryID, err := svc.SubmitPainEntry(context.Background(), 1, "user_abcdef123", painInput())
	require.NoError(t, err)
	assert.Equal(t, "abc123", entryID)
	assert.Equal(t, PhaseIdle, svc.Phase(1, FormPain))

	notice := svc.Notice(1, FormPain)
	require.NotNil(t, notice)
	assert.False(t, notice.IsError)
	assert.Contains(t, notice.Text, "abc123")

	// Success notices clear themselves after the TTL.
	require.Eventually(t, func() bool {
		return svc.Notice(1, FormPain) == nil
	}, time.Second, 10*time.Millisecond)
}

func TestSubmitPainEntryErrorNoticeIsSticky(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "Pain score must be between 1 and 10"}`))
	}))
	defer server.Close()

	svc := NewTrackerService(apiclient.NewClient(server.URL))
	svc.noticeTTL = 20 * time.Millisecond

	_, err := svc.SubmitPainEntry(context.Background(), 1, "user_abcdef123", painInput())
	require.Error(t, err)
	assert.Equal(t, PhaseIdle, svc.Phase(1, FormPain))

	notice := svc.Notice(1, FormPain)
	require.NotNil(t, notice)
	assert.True(t, notice.IsError)
	assert.Contains(t, notice.Text, "Pain score must be between 1 and 10")

	// Error notices do not expire.
	time.Sleep(100 * time.Millisecond)
	require.NotNil(t, svc.Notice(1, FormPain))
}

func TestSubmitTransportErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	svc := NewTrackerService(apiclient.NewClient(server.URL))

	_, err := svc.SubmitPainEntry(context.Background(), 1, "user_abcdef123", painInput())
	require.Error(t, err)

	notice := svc.Notice(1, FormPain)
	require.NotNil(t, notice)
	assert.True(t, notice.IsError)
	assert.Contains(t, notice.Text, "could not reach the server")
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"entry_id": 1}`))
	}))
	defer server.Close()
	defer close(release)

	svc := NewTrackerService(apiclient.NewClient(server.URL))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.SubmitPainEntry(context.Background(), 1, "user_abcdef123", painInput())
	}()

	require.Eventually(t, func() bool {
		return svc.Phase(1, FormPain) == PhaseSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := svc.SubmitPainEntry(context.Background(), 1, "user_abcdef123", painInput())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	// The two forms are independent: a lifestyle submission is not
	// blocked by the in-flight pain submission.
	assert.Equal(t, PhaseIdle, svc.Phase(1, FormLifestyle))

	release <- struct{}{}
	wg.Wait()
	assert.Equal(t, PhaseIdle, svc.Phase(1, FormPain))
}
