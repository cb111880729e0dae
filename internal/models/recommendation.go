package models

import (
	"time"
)

// RecommendationCategory groups recommendations by the kind of action proposed
type RecommendationCategory string

const (
	CategoryRebalancing     RecommendationCategory = "REBALANCING"
	CategoryDiversification RecommendationCategory = "DIVERSIFICATION"
	CategoryRiskReduction   RecommendationCategory = "RISK_REDUCTION"
	CategoryIncome          RecommendationCategory = "INCOME"
)

// Priority orders recommendations by urgency
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Recommendation is a single human-readable action item
type Recommendation struct {
	Category        RecommendationCategory `json:"category"`
	Priority        Priority               `json:"priority"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	CurrentValue    float64                `json:"current_value"`
	TargetValue     float64                `json:"target_value"`
	EstimatedImpact string                 `json:"estimated_impact"`
}

// RecommendationBundle is produced fresh on every generation.
// ID is empty until the bundle has been persisted.
type RecommendationBundle struct {
	ID                string           `json:"id,omitempty"`
	InvestorID        string           `json:"investor_id"`
	Recommendations   []Recommendation `json:"recommendations"`
	OverallAssessment string           `json:"overall_assessment"`
	GeneratedAt       time.Time        `json:"generated_at"`
	NextReviewDate    time.Time        `json:"next_review_date"`
}
