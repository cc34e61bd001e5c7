package handlers

import (
	"github.com/periodpain/pain-helper/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	IdentitySvc       interfaces.IdentityServiceInterface
	TrackerSvc        interfaces.TrackerServiceInterface
	HistorySvc        interfaces.HistoryServiceInterface
	PredictionSvc     interfaces.PredictionServiceInterface
	RecommendationSvc interfaces.RecommendationServiceInterface
}
