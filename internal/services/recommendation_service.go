package services

import (
	"context"
	"sync"

	"github.com/periodpain/pain-helper/internal/apiclient"
	"github.com/periodpain/pain-helper/internal/domain"
	apperrors "github.com/periodpain/pain-helper/internal/errors"
	"github.com/periodpain/pain-helper/internal/logger"
)

// Helpfulness scores sent for the binary feedback choice.
const (
	scoreHelpful    = 5
	scoreNotHelpful = 2
)

// RecommendationService fetches categorized recommendations and
// submits per-item helpfulness feedback. Feedback is fire-and-forget:
// it never mutates the recommendation list and the list is not
// re-fetched after it.
type RecommendationService struct {
	api *apiclient.Client

	mu        sync.Mutex
	envelopes map[int64]*domain.RecommendationEnvelope
}

// NewRecommendationService creates the recommendation and feedback
// service.
func NewRecommendationService(api *apiclient.Client) *RecommendationService {
	return &RecommendationService{
		api:       api,
		envelopes: make(map[int64]*domain.RecommendationEnvelope),
	}
}

// GetRecommendations fetches the current recommendation envelope,
// keeping it around so feedback buttons can refer to items by position.
// Category and item order stay exactly as the server sent them.
func (s *RecommendationService) GetRecommendations(ctx context.Context, installationID int64, userID string) (*domain.RecommendationEnvelope, error) {
	envelope, err := s.api.GetRecommendations(ctx, userID)
	if err != nil {
		return nil, apperrors.NewRemoteError(err, "recommendation fetch")
	}

	s.mu.Lock()
	s.envelopes[installationID] = envelope
	s.mu.Unlock()
	return envelope, nil
}

// Latest returns the most recently fetched envelope, or nil.
func (s *RecommendationService) Latest(installationID int64) *domain.RecommendationEnvelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.envelopes[installationID]
}

// Item resolves an item from the latest envelope by group and index.
func (s *RecommendationService) Item(installationID int64, group, index int) (*domain.RecommendationItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	envelope := s.envelopes[installationID]
	if envelope == nil || group < 0 || group >= len(envelope.Recommendations) {
		return nil, false
	}
	items := envelope.Recommendations[group].Items
	if index < 0 || index >= len(items) {
		return nil, false
	}
	item := items[index]
	return &item, true
}

// SubmitFeedback reports whether a recommendation helped. The item
// name doubles as the feedback type key, so two items sharing a name
// are indistinguishable to the backend.
func (s *RecommendationService) SubmitFeedback(ctx context.Context, userID, itemName string, helpful bool) error {
	score := scoreNotHelpful
	if helpful {
		score = scoreHelpful
	}

	if err := s.api.SubmitFeedback(ctx, userID, itemName, score); err != nil {
		logger.Warn("Feedback submission failed", "item", itemName, "error", err)
		return apperrors.NewRemoteError(err, "feedback submission")
	}

	logger.Info("Feedback submitted", "item", itemName, "score", score)
	return nil
}
