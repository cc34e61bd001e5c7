package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/periodpain/pain-helper/internal/apiclient"
	"github.com/periodpain/pain-helper/internal/domain"
	apperrors "github.com/periodpain/pain-helper/internal/errors"
)

// AllowedPredictionDays are the only horizon lengths the client offers.
var AllowedPredictionDays = []int{1, 3, 7, 14}

// PredictionService fetches prediction horizons on explicit user
// request. Nothing is cached between fetches: every request replaces
// the prior envelope in full, and a response overtaken by a newer
// request for the same installation is discarded.
type PredictionService struct {
	api *apiclient.Client

	mu        sync.Mutex
	envelopes map[int64]*domain.PredictionEnvelope
	seqs      map[int64]uint64
}

// NewPredictionService creates the prediction retriever.
func NewPredictionService(api *apiclient.Client) *PredictionService {
	return &PredictionService{
		api:       api,
		envelopes: make(map[int64]*domain.PredictionEnvelope),
		seqs:      make(map[int64]uint64),
	}
}

// GetPredictions fetches a horizon of days predicted values. days must
// be one of AllowedPredictionDays.
func (s *PredictionService) GetPredictions(ctx context.Context, installationID int64, userID string, days int) (*domain.PredictionEnvelope, error) {
	if !validPredictionDays(days) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported prediction horizon: %d days", days))
	}

	s.mu.Lock()
	s.seqs[installationID]++
	seq := s.seqs[installationID]
	s.mu.Unlock()

	envelope, err := s.api.GetPredictions(ctx, userID, days)
	if err != nil {
		return nil, apperrors.NewRemoteError(err, "prediction fetch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seqs[installationID] {
		return s.envelopes[installationID], nil
	}
	s.envelopes[installationID] = envelope
	return envelope, nil
}

// Latest returns the most recently accepted envelope, or nil.
func (s *PredictionService) Latest(installationID int64) *domain.PredictionEnvelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.envelopes[installationID]
}

func validPredictionDays(days int) bool {
	for _, d := range AllowedPredictionDays {
		if d == days {
			return true
		}
	}
	return false
}
