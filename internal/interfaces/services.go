package interfaces

import (
	"context"

	"github.com/periodpain/pain-helper/internal/domain"
	"github.com/periodpain/pain-helper/internal/services"
)

// IdentityServiceInterface defines the contract for the anonymous
// identity store
type IdentityServiceInterface interface {
	GetOrCreateIdentity(ctx context.Context, installationID int64) (string, error)
}

// TrackerServiceInterface defines the contract for entry submission
type TrackerServiceInterface interface {
	SubmitPainEntry(ctx context.Context, installationID int64, userID string, entry domain.PainEntryInput) (string, error)
	SubmitLifestyleEntry(ctx context.Context, installationID int64, userID string, entry domain.LifestyleEntryInput) (string, error)
	Phase(installationID int64, kind services.FormKind) services.SubmissionPhase
	Notice(installationID int64, kind services.FormKind) *services.Notice
}

// HistoryServiceInterface defines the contract for history aggregation
type HistoryServiceInterface interface {
	RefreshHistory(ctx context.Context, installationID int64, userID string) (*services.HistoryView, error)
	View(installationID int64) *services.HistoryView
}

// PredictionServiceInterface defines the contract for prediction
// retrieval
type PredictionServiceInterface interface {
	GetPredictions(ctx context.Context, installationID int64, userID string, days int) (*domain.PredictionEnvelope, error)
	Latest(installationID int64) *domain.PredictionEnvelope
}

// RecommendationServiceInterface defines the contract for the
// recommendation and feedback loop
type RecommendationServiceInterface interface {
	GetRecommendations(ctx context.Context, installationID int64, userID string) (*domain.RecommendationEnvelope, error)
	Latest(installationID int64) *domain.RecommendationEnvelope
	Item(installationID int64, group, index int) (*domain.RecommendationItem, bool)
	SubmitFeedback(ctx context.Context, userID, itemName string, helpful bool) error
}
