package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PainType classifies a pain entry.
type PainType string

const (
	PainTypeCramps    PainType = "cramps"
	PainTypeHeadache  PainType = "headache"
	PainTypeBackPain  PainType = "backpain"
	PainTypeJointPain PainType = "joint_pain"
	PainTypeOther     PainType = "other"
)

// PainEntry is a pain record as returned by the backend. The date is
// assigned server-side; entries are append-only and read-only on the
// client.
type PainEntry struct {
	Date               string   `json:"date"`
	PainScore          int      `json:"pain_score"`
	PainType           PainType `json:"pain_type"`
	ProductivityImpact int      `json:"productivity_impact"`
	Notes              string   `json:"notes,omitempty"`
}

// PainEntryInput is the payload for creating a pain entry.
type PainEntryInput struct {
	PainScore          int      `json:"pain_score"`
	PainType           PainType `json:"pain_type"`
	ProductivityImpact int      `json:"productivity_impact"`
	Notes              string   `json:"notes,omitempty"`
}

// LifestyleEntryInput is the payload for creating a lifestyle entry.
type LifestyleEntryInput struct {
	SleepHours      float64 `json:"sleep_hours"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	StressLevel     int     `json:"stress_level"`
	HydrationLiters float64 `json:"hydration_liters"`
}

// HistorySummary holds statistics derived from the in-memory pain entry
// collection. It is recomputed in full on every fetch, never updated
// incrementally. MinPainScore is 10 when there is no data yet; that is
// a sentinel for the empty state, not a real minimum.
type HistorySummary struct {
	TotalEntries int
	AvgPainScore float64
	MaxPainScore int
	MinPainScore int
}

// PredictionDay is one day of predicted values. Each metric may be
// absent, which is distinct from a zero value.
type PredictionDay struct {
	Date               string   `json:"date"`
	PredictedPainScore *float64 `json:"predicted_pain_score"`
	PredictedStress    *float64 `json:"predicted_stress"`
	Confidence         *float64 `json:"confidence"`
}

// PredictionEnvelope wraps a prediction horizon together with its
// generation metadata. Fully server-owned; the client renders it
// verbatim and never caches it across fetches.
type PredictionEnvelope struct {
	UserID       string          `json:"user_id"`
	GeneratedAt  string          `json:"generated_at"`
	ModelVersion string          `json:"model_version"`
	Predictions  []PredictionDay `json:"predictions"`
}

// RecommendationItem is a single recommended relief action.
type RecommendationItem struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	EvidenceLevel string  `json:"evidence_level"`
	Effectiveness float64 `json:"effectiveness"`
	Confidence    float64 `json:"confidence"`
	Explanation   string  `json:"explanation"`
}

// RecommendationGroup is one category of recommendations. The category
// arrives as a machine key (snake_case).
type RecommendationGroup struct {
	Category string
	Items    []RecommendationItem
}

// RecommendationGroups preserves the server's category order. A plain
// map would lose it, so the JSON object is decoded token by token.
type RecommendationGroups []RecommendationGroup

// RecommendationEnvelope wraps categorized recommendations with their
// generation timestamp.
type RecommendationEnvelope struct {
	GeneratedAt     string               `json:"generated_at"`
	Recommendations RecommendationGroups `json:"recommendations"`
}

// UnmarshalJSON decodes the category object in key order.
func (g *RecommendationGroups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("recommendations: expected object, got %v", tok)
	}

	groups := RecommendationGroups{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		category, ok := tok.(string)
		if !ok {
			return fmt.Errorf("recommendations: expected category key, got %v", tok)
		}

		var items []RecommendationItem
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("recommendations: category %q: %w", category, err)
		}
		groups = append(groups, RecommendationGroup{Category: category, Items: items})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*g = groups
	return nil
}
